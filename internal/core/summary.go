package core

import "time"

// ApartmentStatus pairs an apartment with its resolved status for one
// period, ready for listing rows.
type ApartmentStatus struct {
	Apartment Apartment
	Status    Status
}

// PropertySummary is the per-property roll-up for one period.
//
// TotalPending counts pending and overdue apartments together, valued
// at the apartment's rent amount (not the tenant's); OverdueCount is
// carried separately so surfaces can break the figure down without a
// second pass.
type PropertySummary struct {
	Period        Period
	TotalReceived Money
	TotalPending  Money
	OccupiedCount int
	VacantCount   int
	PaidCount     int
	PendingCount  int
	OverdueCount  int
}

// Summarize rolls the property's apartments up for the target period in
// a single pass. Accumulation is plain integer cents, so apartment
// order cannot affect the sums.
func Summarize(prop Property, p Period, now time.Time) PropertySummary {
	sum := PropertySummary{Period: p}
	for _, apt := range prop.Apartments {
		switch ResolveStatus(apt, p, now) {
		case StatusVacant:
			sum.VacantCount++
		case StatusPaid:
			sum.OccupiedCount++
			sum.PaidCount++
			if pay, ok := apt.Tenant.Payments.FindForPeriod(p); ok {
				sum.TotalReceived.Cents += pay.Amount.Cents
			}
		case StatusOverdue:
			sum.OccupiedCount++
			sum.PendingCount++
			sum.OverdueCount++
			sum.TotalPending.Cents += apt.RentAmount.Cents
		case StatusPending:
			sum.OccupiedCount++
			sum.PendingCount++
			sum.TotalPending.Cents += apt.RentAmount.Cents
		}
	}
	return sum
}

// StatusRows resolves every apartment's status for the target period,
// preserving the property's display order.
func StatusRows(prop Property, p Period, now time.Time) []ApartmentStatus {
	rows := make([]ApartmentStatus, 0, len(prop.Apartments))
	for _, apt := range prop.Apartments {
		rows = append(rows, ApartmentStatus{
			Apartment: apt,
			Status:    ResolveStatus(apt, p, now),
		})
	}
	return rows
}
