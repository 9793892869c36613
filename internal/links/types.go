// Package links contains the redirect-record model and the Postgres-backed
// authoritative store for redirect mappings.
package links

import (
	"time"

	"github.com/google/uuid"
)

// RedirectRecord is a single short-link mapping as held by the authoritative
// store. Slug is the unique key the routing path resolves.
type RedirectRecord struct {
	ID        uuid.UUID  `json:"id"`
	Slug      string     `json:"slug"`
	TargetURL string     `json:"targetUrl"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
