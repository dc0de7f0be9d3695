// Package report projects a property snapshot into the structures both
// presentation surfaces share: the on-screen dashboard and the
// printable export render from the same build, so status and totals can
// never drift between them.
package report

import (
	"time"

	"frota/internal/core"
)

// PropertyReport is the monthly roll-up for one property: header
// fields, financial summary, and one status row per apartment.
type PropertyReport struct {
	Property    core.Property
	Period      core.Period
	Summary     core.PropertySummary
	Rows        []core.ApartmentStatus
	GeneratedAt time.Time
}

// TenantReport covers a single occupied apartment: tenant details, the
// payment state for the target period, and the payment history.
type TenantReport struct {
	Property    core.Property
	Apartment   core.Apartment
	Tenant      core.Tenant
	Period      core.Period
	Status      core.Status
	Current     *core.Payment
	History     []core.Payment
	SinceYear   int
	GeneratedAt time.Time
}

// BuildProperty derives the property report for the target period.
// Status and totals come straight from the core resolver/aggregator;
// nothing here re-derives payment state.
func BuildProperty(prop core.Property, p core.Period, now time.Time) PropertyReport {
	return PropertyReport{
		Property:    prop,
		Period:      p,
		Summary:     core.Summarize(prop, p, now),
		Rows:        core.StatusRows(prop, p, now),
		GeneratedAt: now,
	}
}

// BuildTenant derives the tenant report for the target period. The
// history is limited to years >= sinceYear; pass the tenant's earliest
// payment year for the full ledger.
func BuildTenant(prop core.Property, apt core.Apartment, p core.Period, sinceYear int, now time.Time) (TenantReport, error) {
	if apt.Tenant == nil {
		return TenantReport{}, core.ErrApartmentVacant
	}
	rep := TenantReport{
		Property:    prop,
		Apartment:   apt,
		Tenant:      *apt.Tenant,
		Period:      p,
		Status:      core.ResolveStatus(apt, p, now),
		History:     apt.Tenant.Payments.History(sinceYear),
		SinceYear:   sinceYear,
		GeneratedAt: now,
	}
	if pay, ok := apt.Tenant.Payments.FindForPeriod(p); ok {
		rep.Current = &pay
	}
	return rep, nil
}
