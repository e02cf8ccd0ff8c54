package postgres

import "github.com/google/uuid"

// newID mints a fresh identifier for rows this service owns and
// creates rather than upserts by a natural key alone.
func newID() string {
	return uuid.NewString()
}
