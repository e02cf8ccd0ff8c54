package domain

import "time"

// EnforcementAction is a read-only collaborator entity recording a
// past enforcement intervention against a landlord, listing, or area.
type EnforcementAction struct {
	TargetID   string
	TargetType string // "landlord" | "listing" | "area"
	City       string
	ActionType string
	Status     string
	Outcome    string
	CreatedAt  time.Time
}
