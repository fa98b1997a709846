package model

// Claim represents one statement a user wants to investigate, sourced from
// a bulleted list in the claims document. Claims carry no stable identifier:
// they are re-parsed from the document on every connection request and are
// identified by their text alone.
type Claim struct {
	Text string `json:"text"`           // The claim text itself
	Line int    `json:"line,omitempty"` // Line index in the claims document (0-based)
}
