// Package cache provides the transient read-through row cache used by the
// rendering layer. Cached connections are never written back; the relevance
// table file stays the sole source of truth.
package cache

import (
	"time"

	"github.com/factgraph/factgraph/internal/model"
)

// Cache defines the interface for caching decoded rows by connection id.
type Cache interface {
	Get(id string) (model.Connection, bool)
	Set(id string, conn model.Connection, ttl time.Duration)
	Delete(id string)
	Clear()
}
