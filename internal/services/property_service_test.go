package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/amqp"
	"frota/internal/core"
	"frota/internal/store/memory"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type capturePublisher struct{ events []*amqp.ChangeEvent }

func (p *capturePublisher) PublishChange(_ context.Context, ev *amqp.ChangeEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (*PropertyService, *memory.Store, *capturePublisher) {
	t.Helper()
	repo := memory.New()
	pub := &capturePublisher{}
	svc := NewPropertyService(repo, pub, &seqIDs{}, fixedNow)
	return svc, repo, pub
}

func seedProperty(t *testing.T, svc *PropertyService) (core.Property, core.Apartment) {
	t.Helper()
	ctx := context.Background()

	prop, err := svc.CreateProperty(ctx, PropertyInput{
		Name:              "Edifício Central",
		Address:           "Rua das Flores, 100",
		WaterSewerMonthly: core.Money{Cents: 15000},
	})
	require.NoError(t, err)

	apt, err := svc.AddApartment(ctx, prop.ID, ApartmentInput{
		Identifier: "Apto 101",
		RentAmount: core.Money{Cents: 100000},
	})
	require.NoError(t, err)
	return prop, apt
}

func TestPropertyService_CreateAndList(t *testing.T) {
	svc, _, pub := newTestService(t)
	prop, _ := seedProperty(t, svc)

	props, err := svc.ListProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, prop.ID, props[0].ID)
	assert.Len(t, props[0].Apartments, 1)

	require.NotEmpty(t, pub.events)
	assert.Equal(t, amqp.ChangePropertySaved, pub.events[0].Kind)
}

func TestPropertyService_GetPropertyNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProperty(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrPropertyNotFound)
}

func TestPropertyService_DeleteProperty(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, _ := seedProperty(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProperty(ctx, prop.ID))

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Empty(t, props)

	assert.ErrorIs(t, svc.DeleteProperty(ctx, prop.ID), core.ErrPropertyNotFound)
}

func TestPropertyService_AssignTenantSetsOccupancy(t *testing.T) {
	svc, _, pub := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	tenant, err := svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{
		Name:              "Maria",
		RentAmount:        core.Money{Cents: 100000},
		DueDay:            10,
		HasActiveContract: true,
	})
	require.NoError(t, err)

	got, err := svc.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	require.True(t, got.Apartments[0].Occupied())
	assert.Equal(t, tenant.ID, got.Apartments[0].Tenant.ID)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, amqp.ChangeTenantAssigned, last.Kind)
	assert.Equal(t, tenant.ID, last.TenantID)
}

func TestPropertyService_AssignTenantRejectsOccupied(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	_, err := svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{Name: "Maria", DueDay: 10})
	require.NoError(t, err)

	_, err = svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{Name: "João", DueDay: 5})
	assert.ErrorIs(t, err, core.ErrApartmentOccupied)
}

func TestPropertyService_AssignTenantValidatesDueDay(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)

	_, err := svc.AssignTenant(context.Background(), prop.ID, apt.ID, TenantInput{Name: "Maria", DueDay: 29})
	assert.ErrorIs(t, err, core.ErrInvalidDueDay)
}

func TestPropertyService_RemoveTenantVacates(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	_, err := svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{Name: "Maria", DueDay: 10})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTenant(ctx, prop.ID, apt.ID))

	got, err := svc.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	assert.False(t, got.Apartments[0].Occupied())

	assert.ErrorIs(t, svc.RemoveTenant(ctx, prop.ID, apt.ID), core.ErrApartmentVacant)
}

func TestPropertyService_RecordPaymentUpserts(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	_, err := svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{Name: "Maria", DueDay: 10})
	require.NoError(t, err)

	first, err := svc.RecordPayment(ctx, prop.ID, apt.ID, PaymentInput{
		Month: 3, Year: 2026,
		Amount: core.Money{Cents: 100000},
		Date:   core.NewDate(2026, 3, 4),
		Method: core.MethodPix,
	})
	require.NoError(t, err)

	// Same period again: the record is replaced in place and keeps its id.
	second, err := svc.RecordPayment(ctx, prop.ID, apt.ID, PaymentInput{
		Month: 3, Year: 2026,
		Amount: core.Money{Cents: 95000},
		Date:   core.NewDate(2026, 3, 6),
		Method: core.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	ledger := got.Apartments[0].Tenant.Payments
	require.Len(t, ledger, 1)
	assert.Equal(t, int64(95000), ledger[0].Amount.Cents)
	assert.Equal(t, core.MethodCash, ledger[0].Method)
}

func TestPropertyService_RecordPaymentOnVacantApartment(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)

	_, err := svc.RecordPayment(context.Background(), prop.ID, apt.ID, PaymentInput{
		Month: 3, Year: 2026, Method: core.MethodPix,
	})
	assert.ErrorIs(t, err, core.ErrApartmentVacant)
}

func TestPropertyService_DeletePayment(t *testing.T) {
	svc, _, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	_, err := svc.AssignTenant(ctx, prop.ID, apt.ID, TenantInput{Name: "Maria", DueDay: 10})
	require.NoError(t, err)

	pay, err := svc.RecordPayment(ctx, prop.ID, apt.ID, PaymentInput{
		Month: 3, Year: 2026, Amount: core.Money{Cents: 100000},
		Date: core.NewDate(2026, 3, 4), Method: core.MethodPix,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayment(ctx, prop.ID, apt.ID, pay.ID))
	assert.ErrorIs(t, svc.DeletePayment(ctx, prop.ID, apt.ID, pay.ID), core.ErrPaymentNotFound)

	got, err := svc.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Apartments[0].Tenant.Payments)
}

func TestPropertyService_FailedEditLeavesSnapshotUntouched(t *testing.T) {
	svc, repo, _ := newTestService(t)
	prop, apt := seedProperty(t, svc)
	ctx := context.Background()

	before, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateApartment(ctx, prop.ID, apt.ID, ApartmentInput{Identifier: "  "})
	require.ErrorIs(t, err, core.ErrEmptyIdentifier)

	after, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPropertyService_PublisherFailureDoesNotFailEdit(t *testing.T) {
	repo := memory.New()
	svc := NewPropertyService(repo, failingPublisher{}, &seqIDs{}, fixedNow)

	_, err := svc.CreateProperty(context.Background(), PropertyInput{Name: "Casa"})
	assert.NoError(t, err)
}

type failingPublisher struct{}

func (failingPublisher) PublishChange(context.Context, *amqp.ChangeEvent) error {
	return fmt.Errorf("broker down")
}
