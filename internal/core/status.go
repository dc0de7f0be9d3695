package core

import "time"

const (
	StatusVacant  Status = "vacant"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusPending Status = "pending"
)

// Status is the payment state of one apartment for one period.
// Exactly one status applies per apartment per period.
type Status string

// Label returns the display name used on screen and in reports.
func (s Status) Label() string {
	switch s {
	case StatusVacant:
		return "Vazio"
	case StatusPaid:
		return "Pago"
	case StatusOverdue:
		return "Vencido"
	case StatusPending:
		return "Pendente"
	default:
		return string(s)
	}
}

// DueDate builds the calendar date rent falls due in the given period.
// DueDay is restricted to 1-28 at validation time, so the date is
// constructible in every month.
func DueDate(p Period, dueDay int) time.Time {
	return time.Date(p.Year, time.Month(p.Month), dueDay, 0, 0, 0, 0, time.UTC)
}

// ResolveStatus derives the apartment's status for the target period.
// It is a pure function of its inputs: "now" is injected rather than
// read from the clock, and nothing here mutates the ledger.
//
//   - no tenant: StatusVacant
//   - payment recorded for the period: StatusPaid, regardless of now
//   - otherwise StatusOverdue when now is strictly after the due date,
//     StatusPending when now is on or before it
func ResolveStatus(apt Apartment, p Period, now time.Time) Status {
	if apt.Tenant == nil {
		return StatusVacant
	}
	if _, ok := apt.Tenant.Payments.FindForPeriod(p); ok {
		return StatusPaid
	}
	// Day granularity: rent is pending through the whole due day and
	// becomes overdue the day after.
	due := DueDate(p, apt.Tenant.DueDay)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if nowDay.After(due) {
		return StatusOverdue
	}
	return StatusPending
}
