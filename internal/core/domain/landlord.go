package domain

import "time"

// RegistrationStatus is the compliance registration state of a
// landlord or property, as recorded by the external system of record.
type RegistrationStatus string

const (
	RegistrationFullyCompliant     RegistrationStatus = "fully_compliant"
	RegistrationPartiallyCompliant RegistrationStatus = "partially_compliant"
	RegistrationPending            RegistrationStatus = "pending"
	RegistrationNonCompliant       RegistrationStatus = "non_compliant"
)

// Landlord is a read-only collaborator entity: it is created and
// maintained by an external system, and this service only ever reads
// it when computing risk scores.
type Landlord struct {
	ID                 string
	Name               string
	Email              string
	CreatedAt          time.Time
	PropertyCount      int // invariant: >= 0
	RegistrationStatus RegistrationStatus
	PaymentStatus      string
}

// ComplianceEventType enumerates the kinds of events the compliance
// history factor reads.
type ComplianceEventType string

const (
	EventViolation       ComplianceEventType = "violation"
	EventWarning         ComplianceEventType = "warning"
	EventLateRegistration ComplianceEventType = "late_registration"
	EventResolvedIssue   ComplianceEventType = "resolved_issue"
	EventAuditPassed     ComplianceEventType = "audit_passed"
	EventOnTimePayment   ComplianceEventType = "on_time_payment"
	EventLatePayment     ComplianceEventType = "late_payment"
)

// ComplianceEvent is a read-only collaborator entity recording a
// landlord-level compliance occurrence.
type ComplianceEvent struct {
	LandlordID  string
	EventType   ComplianceEventType
	EventDate   time.Time
	Description string
}

// ResponseTimeSample is a single landlord-to-request response
// latency observation, used by the response-time risk factor.
type ResponseTimeSample struct {
	SentAt      time.Time
	RespondedAt time.Time
}
