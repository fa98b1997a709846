// Package workflow orchestrates the connection flows: creating a new
// marker+row pair, deleting one, and editing relevance items inside an open
// detail view. Prompts and documents are reached only through narrow
// interfaces so a host can supply its own.
package workflow

import (
	"fmt"

	"github.com/factgraph/factgraph/internal/claims"
	"github.com/factgraph/factgraph/internal/codec"
	"github.com/factgraph/factgraph/internal/editor"
	"github.com/factgraph/factgraph/internal/marker"
	"github.com/factgraph/factgraph/internal/model"
	"github.com/factgraph/factgraph/internal/store"
)

// Editor is the active-document contract the flows edit through.
type Editor interface {
	GetLine(i int) string
	SetLine(i int, text string)
	LineCount() int
	GetCursor() editor.Position
	SetCursor(pos editor.Position)
	ReplaceSelection(text string)
}

// Prompter supplies the user interaction steps. Each prompt reports false
// when the user cancels; cancellation before a store write is a clean no-op.
type Prompter interface {
	SelectClaim(claims []model.Claim) (model.Claim, bool, error)
	RelevanceText() (string, bool, error)
	ConfirmDelete(id string) (bool, error)
}

// Notifier surfaces transient user-visible notices.
type Notifier interface {
	Notify(message string)
}

// Connector runs the create and delete flows against one claims source and
// one relevance store.
type Connector struct {
	claims   *claims.Source
	store    *store.Store
	prompter Prompter
	notify   Notifier
}

// NewConnector wires a connector. A nil notifier discards notices.
func NewConnector(src *claims.Source, st *store.Store, prompter Prompter, notify Notifier) *Connector {
	return &Connector{claims: src, store: st, prompter: prompter, notify: notify}
}

// Link runs the create flow: read the claims list, prompt for a claim and
// free-text relevance, persist the row, then insert the literal marker text
// over the editor's current selection. It returns the new id and whether a
// link was made; a cancelled prompt returns with no side effect.
func (c *Connector) Link(ed Editor) (string, bool, error) {
	list, err := c.claims.List()
	if err != nil {
		return "", false, err
	}
	if len(list) == 0 {
		c.send(fmt.Sprintf("no claims found in %s", c.claims.Path()))
		return "", false, nil
	}

	claim, ok, err := c.prompter.SelectClaim(list)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	text, ok, err := c.prompter.RelevanceText()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	id, err := c.store.CreateRow(claim.Text, text)
	if err != nil {
		return "", false, err
	}

	ed.ReplaceSelection(marker.Text(id))
	return id, true, nil
}

// Unlink runs the delete flow: confirm, delete the row, then strip the first
// marker occurrence from the document. Only the first line carrying the
// marker is edited; a marker is typically referenced once near its point of
// creation. The cursor is restored to its pre-edit position, with its column
// clamped when the edited line is the cursor's own line.
func (c *Connector) Unlink(ed Editor, id string) (bool, error) {
	ok, err := c.prompter.ConfirmDelete(id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := c.store.DeleteRow(id); err != nil {
		return false, err
	}

	cursor := ed.GetCursor()
	for i := 0; i < ed.LineCount(); i++ {
		stripped, found := marker.StripFromLine(ed.GetLine(i), id)
		if !found {
			continue
		}
		ed.SetLine(i, stripped)
		if cursor.Line == i && cursor.Ch > len(stripped) {
			cursor.Ch = len(stripped)
		}
		break
	}
	ed.SetCursor(cursor)
	return true, nil
}

func (c *Connector) send(message string) {
	if c.notify != nil {
		c.notify.Notify(message)
	}
}

// Detail is an open row-detail view: the store row mirrored into memory for
// display. Mutations go to the store first and are then mirrored into the
// in-memory list, so the view re-renders without a second read.
type Detail struct {
	store *store.Store
	ID    string
	Claim string
	Items []string
}

// OpenDetail reads the row for one id. It reports false for a dangling id.
func OpenDetail(st *store.Store, id string) (*Detail, bool, error) {
	conn, ok, err := st.ReadRow(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &Detail{store: st, ID: conn.ID, Claim: conn.Claim, Items: conn.RelevanceItems}, true, nil
}

// AddItem appends one sanitized relevance item and mirrors it into the view.
func (d *Detail) AddItem(text string) error {
	text = codec.Sanitize(text)
	if text == "" {
		return nil
	}
	if err := d.store.AppendItem(d.ID, text); err != nil {
		return err
	}
	d.Items = append(d.Items, text)
	return nil
}

// RemoveItem deletes the item at index and splices the same index out of the
// view. An out-of-range index leaves both untouched.
func (d *Detail) RemoveItem(index int) error {
	if err := d.store.RemoveItem(d.ID, index); err != nil {
		return err
	}
	if index >= 0 && index < len(d.Items) {
		d.Items = append(d.Items[:index], d.Items[index+1:]...)
	}
	return nil
}
