package port

import (
	"context"

	"compliance-intel-backend/internal/core/domain"
)

// LookupFunc is the uniform shape of an OSINT adapter call: a pure
// wrapper around one external HTTP request plus response
// normalisation, expressed as a value so adapters can be assembled
// into a slice and fanned out generically (REDESIGN FLAGS).
type LookupFunc func(ctx context.Context, input string) domain.ProviderResult

// Adapter pairs an adapter's name with its lookup function. This
// replaces the source's module-level per-provider objects with a
// plain value the orchestrator can range over.
type Adapter struct {
	Name   string
	Lookup LookupFunc
}
