// Package services orchestrates snapshot edits. Every operation
// follows the same arc: load the full collection, mutate a copy, save
// the full collection back, then publish a best-effort change event.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"frota/internal/amqp"
	"frota/internal/core"
	"frota/internal/store"
)

// Publisher emits change events after successful edits. Publishing
// failures are logged and swallowed: the edit is already persisted.
type Publisher interface {
	PublishChange(ctx context.Context, ev *amqp.ChangeEvent) error
}

type PropertyService struct {
	repo      store.PropertyRepository
	publisher Publisher
	ids       IDGenerator
	now       func() time.Time
}

// NewPropertyService wires the service. publisher may be nil; now
// defaults to time.Now.
func NewPropertyService(repo store.PropertyRepository, publisher Publisher, ids IDGenerator, now func() time.Time) *PropertyService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if now == nil {
		now = time.Now
	}
	return &PropertyService{repo: repo, publisher: publisher, ids: ids, now: now}
}

type (
	PropertyInput struct {
		Name              string
		Address           string
		EnelRegistry      string
		ElectricPanel     string
		WaterSewerMonthly core.Money
	}

	ApartmentInput struct {
		Identifier string
		RentAmount core.Money
	}

	TenantInput struct {
		Name              string
		Phone             string
		CPF               string
		RG                string
		Observations      string
		RentAmount        core.Money
		DueDay            int
		DocumentPhoto     string
		HasActiveContract bool
	}

	PaymentInput struct {
		Month  int
		Year   int
		Amount core.Money
		Date   core.Date
		Method core.PaymentMethod
	}
)

// ListProperties returns the current snapshot.
func (s *PropertyService) ListProperties(ctx context.Context) ([]core.Property, error) {
	return s.repo.LoadAll(ctx)
}

// GetProperty returns one property from the current snapshot.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID string) (core.Property, error) {
	props, err := s.repo.LoadAll(ctx)
	if err != nil {
		return core.Property{}, err
	}
	prop := findProperty(props, propertyID)
	if prop == nil {
		return core.Property{}, core.ErrPropertyNotFound
	}
	return *prop, nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, in PropertyInput) (core.Property, error) {
	prop := core.Property{
		ID:                s.ids.NewID(),
		Name:              in.Name,
		Address:           in.Address,
		EnelRegistry:      in.EnelRegistry,
		ElectricPanel:     in.ElectricPanel,
		WaterSewerMonthly: in.WaterSewerMonthly,
		Apartments:        []core.Apartment{},
	}
	if err := prop.Validate(); err != nil {
		return core.Property{}, err
	}

	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		return append(props, prop), nil
	}, event(amqp.ChangePropertySaved, prop.ID))
	if err != nil {
		return core.Property{}, err
	}
	return prop, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID string, in PropertyInput) (core.Property, error) {
	var updated core.Property
	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		prop := findProperty(props, propertyID)
		if prop == nil {
			return nil, core.ErrPropertyNotFound
		}
		prop.Name = in.Name
		prop.Address = in.Address
		prop.EnelRegistry = in.EnelRegistry
		prop.ElectricPanel = in.ElectricPanel
		prop.WaterSewerMonthly = in.WaterSewerMonthly
		if err := prop.Validate(); err != nil {
			return nil, err
		}
		updated = *prop
		return props, nil
	}, event(amqp.ChangePropertySaved, propertyID))
	if err != nil {
		return core.Property{}, err
	}
	return updated, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, propertyID string) error {
	return s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		for i, prop := range props {
			if prop.ID == propertyID {
				return append(props[:i], props[i+1:]...), nil
			}
		}
		return nil, core.ErrPropertyNotFound
	}, event(amqp.ChangePropertyDeleted, propertyID))
}

func (s *PropertyService) AddApartment(ctx context.Context, propertyID string, in ApartmentInput) (core.Apartment, error) {
	apt := core.Apartment{
		ID:         s.ids.NewID(),
		Identifier: in.Identifier,
		RentAmount: in.RentAmount,
	}
	if err := apt.Validate(); err != nil {
		return core.Apartment{}, err
	}

	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		prop := findProperty(props, propertyID)
		if prop == nil {
			return nil, core.ErrPropertyNotFound
		}
		prop.Apartments = append(prop.Apartments, apt)
		return props, nil
	}, event(amqp.ChangePropertySaved, propertyID))
	if err != nil {
		return core.Apartment{}, err
	}
	return apt, nil
}

func (s *PropertyService) UpdateApartment(ctx context.Context, propertyID, apartmentID string, in ApartmentInput) (core.Apartment, error) {
	var updated core.Apartment
	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		apt.Identifier = in.Identifier
		apt.RentAmount = in.RentAmount
		if err := apt.Validate(); err != nil {
			return nil, err
		}
		updated = *apt
		return props, nil
	}, event(amqp.ChangePropertySaved, propertyID))
	if err != nil {
		return core.Apartment{}, err
	}
	return updated, nil
}

func (s *PropertyService) DeleteApartment(ctx context.Context, propertyID, apartmentID string) error {
	return s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		prop := findProperty(props, propertyID)
		if prop == nil {
			return nil, core.ErrPropertyNotFound
		}
		for i, apt := range prop.Apartments {
			if apt.ID == apartmentID {
				prop.Apartments = append(prop.Apartments[:i], prop.Apartments[i+1:]...)
				return props, nil
			}
		}
		return nil, core.ErrApartmentNotFound
	}, event(amqp.ChangePropertySaved, propertyID))
}

// AssignTenant moves an apartment to occupied. Occupancy is derived
// from the tenant reference, so setting it here is all the consistency
// the snapshot needs.
func (s *PropertyService) AssignTenant(ctx context.Context, propertyID, apartmentID string, in TenantInput) (core.Tenant, error) {
	tenant := core.Tenant{
		ID:                s.ids.NewID(),
		Name:              in.Name,
		Phone:             in.Phone,
		CPF:               in.CPF,
		RG:                in.RG,
		Observations:      in.Observations,
		RentAmount:        in.RentAmount,
		DueDay:            in.DueDay,
		DocumentPhoto:     in.DocumentPhoto,
		HasActiveContract: in.HasActiveContract,
		Payments:          core.Ledger{},
	}
	if err := tenant.Validate(); err != nil {
		return core.Tenant{}, err
	}

	ev := event(amqp.ChangeTenantAssigned, propertyID)
	ev.ApartmentID = apartmentID
	ev.TenantID = tenant.ID

	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		if apt.Occupied() {
			return nil, core.ErrApartmentOccupied
		}
		apt.Tenant = &tenant
		return props, nil
	}, ev)
	if err != nil {
		return core.Tenant{}, err
	}
	return tenant, nil
}

// UpdateTenant edits tenant fields in place, keeping the ledger.
func (s *PropertyService) UpdateTenant(ctx context.Context, propertyID, apartmentID string, in TenantInput) (core.Tenant, error) {
	var updated core.Tenant
	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		if apt.Tenant == nil {
			return nil, core.ErrApartmentVacant
		}
		t := apt.Tenant
		t.Name = in.Name
		t.Phone = in.Phone
		t.CPF = in.CPF
		t.RG = in.RG
		t.Observations = in.Observations
		t.RentAmount = in.RentAmount
		t.DueDay = in.DueDay
		t.DocumentPhoto = in.DocumentPhoto
		t.HasActiveContract = in.HasActiveContract
		if err := t.Validate(); err != nil {
			return nil, err
		}
		updated = *t
		return props, nil
	}, event(amqp.ChangePropertySaved, propertyID))
	if err != nil {
		return core.Tenant{}, err
	}
	return updated, nil
}

// RemoveTenant clears the tenant reference, vacating the apartment.
// The tenant's ledger goes with them; there is no orphan history.
func (s *PropertyService) RemoveTenant(ctx context.Context, propertyID, apartmentID string) error {
	ev := event(amqp.ChangeTenantRemoved, propertyID)
	ev.ApartmentID = apartmentID

	return s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		if apt.Tenant == nil {
			return nil, core.ErrApartmentVacant
		}
		ev.TenantID = apt.Tenant.ID
		apt.Tenant = nil
		return props, nil
	}, ev)
}

// RecordPayment upserts a payment into the tenant's ledger. When a
// payment already covers the period, its identity is kept and the
// record replaced; otherwise a fresh id is minted.
func (s *PropertyService) RecordPayment(ctx context.Context, propertyID, apartmentID string, in PaymentInput) (core.Payment, error) {
	pay := core.Payment{
		ID:     s.ids.NewID(),
		Month:  in.Month,
		Year:   in.Year,
		Amount: in.Amount,
		Date:   in.Date,
		Method: in.Method,
	}
	if err := pay.Validate(); err != nil {
		return core.Payment{}, err
	}

	ev := event(amqp.ChangePaymentRecorded, propertyID)
	ev.ApartmentID = apartmentID
	ev.Month, ev.Year = in.Month, in.Year

	err := s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		if apt.Tenant == nil {
			return nil, core.ErrApartmentVacant
		}
		if existing, ok := apt.Tenant.Payments.FindForPeriod(pay.Period()); ok {
			pay.ID = existing.ID
		}
		apt.Tenant.Payments.Upsert(pay)
		ev.TenantID = apt.Tenant.ID
		ev.PaymentID = pay.ID
		return props, nil
	}, ev)
	if err != nil {
		return core.Payment{}, err
	}
	return pay, nil
}

// DeletePayment removes one ledger record. The confirmation prompt
// lives at the UI boundary, not here.
func (s *PropertyService) DeletePayment(ctx context.Context, propertyID, apartmentID, paymentID string) error {
	ev := event(amqp.ChangePaymentDeleted, propertyID)
	ev.ApartmentID = apartmentID
	ev.PaymentID = paymentID

	return s.edit(ctx, func(props []core.Property) ([]core.Property, error) {
		apt, err := findApartment(props, propertyID, apartmentID)
		if err != nil {
			return nil, err
		}
		if apt.Tenant == nil {
			return nil, core.ErrApartmentVacant
		}
		if err := apt.Tenant.Payments.Remove(paymentID); err != nil {
			return nil, err
		}
		return props, nil
	}, ev)
}

// edit runs one logical snapshot edit: load, mutate, save, publish.
func (s *PropertyService) edit(ctx context.Context, mutate func([]core.Property) ([]core.Property, error), ev *amqp.ChangeEvent) error {
	props, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	props, err = mutate(props)
	if err != nil {
		return err
	}

	if err := s.repo.SaveAll(ctx, props); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.publish(ctx, ev)
	return nil
}

func (s *PropertyService) publish(ctx context.Context, ev *amqp.ChangeEvent) {
	if s.publisher == nil || ev == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"kind", ev.Kind,
			"property_id", ev.PropertyID,
			"error", err)
	}
}

func event(kind, propertyID string) *amqp.ChangeEvent {
	ev := amqp.NewChangeEvent(kind)
	ev.PropertyID = propertyID
	return ev
}

func findProperty(props []core.Property, id string) *core.Property {
	for i := range props {
		if props[i].ID == id {
			return &props[i]
		}
	}
	return nil
}

func findApartment(props []core.Property, propertyID, apartmentID string) (*core.Apartment, error) {
	prop := findProperty(props, propertyID)
	if prop == nil {
		return nil, core.ErrPropertyNotFound
	}
	for i := range prop.Apartments {
		if prop.Apartments[i].ID == apartmentID {
			return &prop.Apartments[i], nil
		}
	}
	return nil, core.ErrApartmentNotFound
}
