package model

// Connection pairs one claim with an ordered list of relevance items,
// identified by one id. The id is a 6-digit numeric token derived from a
// truncated timestamp; it is referenced from prose through inline
// (fg:<id>) markers and keys exactly one row in the relevance table.
type Connection struct {
	ID             string   `json:"id"`
	Claim          string   `json:"claim"`
	RelevanceItems []string `json:"relevance_items,omitempty"`
}
