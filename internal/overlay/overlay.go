// Package overlay maintains the derived, read-only decoration set that maps
// each discovered marker span to an interactive affordance carrying the
// marker's id. Decorations are recomputed from scratch whenever the document
// content or the visible ranges change; nothing here mutates the document.
package overlay

import (
	"time"

	"github.com/factgraph/factgraph/internal/cache"
	"github.com/factgraph/factgraph/internal/marker"
	"github.com/factgraph/factgraph/internal/model"
	"github.com/factgraph/factgraph/internal/store"
)

// Decoration binds one marker span to the connection id it carries.
type Decoration struct {
	Start int
	End   int
	ID    string
}

// Notifier surfaces transient user-visible notices, such as activating a
// dangling marker.
type Notifier interface {
	Notify(message string)
}

// Renderer computes decoration sets and resolves activations against the
// store through a transient read-through row cache. Rendering performs no
// I/O and cannot fail; only activation touches the store.
type Renderer struct {
	store  *store.Store
	cache  cache.Cache
	ttl    time.Duration
	notify Notifier
}

// NewRenderer creates a renderer over the given store. The cache config
// controls the read-through cache; when disabled every activation reads the
// file. A nil notifier discards notices.
func NewRenderer(st *store.Store, cfg model.CacheConfig, notify Notifier) *Renderer {
	r := &Renderer{store: st, notify: notify}
	if cfg.Enabled {
		r.cache = cache.NewMemoryCache(cfg.TTL, cfg.CleanupInterval)
		r.ttl = cfg.TTL
	}
	return r
}

// Render scans the text within the visible ranges and returns one decoration
// per discovered marker. Dangling ids are decorated like any other; their
// state only surfaces on activation.
func (r *Renderer) Render(text string, visible ...marker.Range) []Decoration {
	matches := marker.Scan(text, visible...)
	decorations := make([]Decoration, 0, len(matches))
	for _, m := range matches {
		decorations = append(decorations, Decoration{Start: m.Start, End: m.End, ID: m.ID})
	}
	return decorations
}

// Activate resolves the affordance for one marker id. A dangling id or a
// failed read surfaces as a transient notice and a false result; activation
// never propagates an error into the render pass.
func (r *Renderer) Activate(id string) (model.Connection, bool) {
	if r.cache != nil {
		if conn, found := r.cache.Get(id); found {
			return conn, true
		}
	}

	conn, ok, err := r.store.ReadRow(id)
	if err != nil {
		r.send("relevance lookup failed: " + err.Error())
		return model.Connection{}, false
	}
	if !ok {
		r.send("no relevance row found for " + marker.Text(id))
		return model.Connection{}, false
	}

	if r.cache != nil {
		r.cache.Set(id, conn, r.ttl)
	}
	return conn, true
}

// Invalidate drops one id from the cache, typically after a store mutation.
func (r *Renderer) Invalidate(id string) {
	if r.cache != nil {
		r.cache.Delete(id)
	}
}

// InvalidateAll drops every cached row.
func (r *Renderer) InvalidateAll() {
	if r.cache != nil {
		r.cache.Clear()
	}
}

func (r *Renderer) send(message string) {
	if r.notify != nil {
		r.notify.Notify(message)
	}
}
