package domain

import "time"

// PaymentStatus is the status of a transient-occupancy tax (TPT)
// payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentLate      PaymentStatus = "late"
)

// TptPayment is a read-only collaborator entity.
//
// Invariant: Status == PaymentCompleted implies PaidDate is non-nil.
type TptPayment struct {
	ID         string
	LandlordID string
	City       string
	Amount     float64
	Status     PaymentStatus
	DueDate    time.Time
	PaymentDate *time.Time
	PaidDate    *time.Time
}

// DaysOverdue returns how many days past the due date the payment is,
// as of `now`. Zero for payments that are not overdue.
func (p *TptPayment) DaysOverdue(now time.Time) int {
	if p.Status != PaymentOverdue && p.Status != PaymentLate {
		return 0
	}
	days := int(now.Sub(p.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Booking is a lazy aggregate input used only by seasonal analysis.
type Booking struct {
	CheckInDate  time.Time
	CheckOutDate time.Time
	TotalNights  int
	Revenue      float64
}
