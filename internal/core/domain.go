package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	MethodCash     PaymentMethod = "cash"
	MethodPix      PaymentMethod = "pix"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
	MethodOther    PaymentMethod = "other"
)

type (
	PaymentMethod string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Property owns an ordered list of apartments. The order is the
	// display/report order and is preserved across snapshots.
	Property struct {
		ID                string      `json:"id"`
		Name              string      `json:"name"`
		Address           string      `json:"address"`
		EnelRegistry      string      `json:"enelRegistry"`
		ElectricPanel     string      `json:"electricPanel"`
		WaterSewerMonthly Money       `json:"waterSewerMonthly"`
		Apartments        []Apartment `json:"apartments"`
	}

	// Apartment optionally houses exactly one tenant. Occupancy is
	// derived from the tenant reference, never stored independently.
	Apartment struct {
		ID         string  `json:"id"`
		Identifier string  `json:"identifier"`
		RentAmount Money   `json:"rentAmount"`
		Tenant     *Tenant `json:"tenant"`
	}

	Tenant struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		Phone             string `json:"phone"`
		CPF               string `json:"cpf"`
		RG                string `json:"rg"`
		Observations      string `json:"observations"`
		RentAmount        Money  `json:"rentAmount"`
		DueDay            int    `json:"dueDay"`
		DocumentPhoto     string `json:"documentPhoto,omitempty"`
		HasActiveContract bool   `json:"hasActiveContract"`
		Payments          Ledger `json:"payments"`
	}

	Payment struct {
		ID     string        `json:"id"`
		Month  int           `json:"month"`
		Year   int           `json:"year"`
		Amount Money         `json:"amount"`
		Date   Date          `json:"date"`
		Method PaymentMethod `json:"method"`
	}
)

var (
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidDueDay     = errors.New("invalid due day")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrEmptyIdentifier   = errors.New("empty identifier")
	ErrEmptyName         = errors.New("empty name")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrApartmentVacant   = errors.New("apartment has no tenant")
	ErrApartmentOccupied = errors.New("apartment already has a tenant")
)

// Occupied reports whether the apartment currently houses a tenant.
func (a Apartment) Occupied() bool {
	return a.Tenant != nil
}

// apartmentJSON carries the snapshot encoding of an apartment. The
// status field is written for compatibility with older snapshots but is
// always recomputed from the tenant reference on load.
type apartmentJSON struct {
	ID         string  `json:"id"`
	Identifier string  `json:"identifier"`
	RentAmount Money   `json:"rentAmount"`
	Status     string  `json:"status"`
	Tenant     *Tenant `json:"tenant"`
}

func (a Apartment) MarshalJSON() ([]byte, error) {
	status := "vacant"
	if a.Occupied() {
		status = "occupied"
	}
	return json.Marshal(apartmentJSON{
		ID:         a.ID,
		Identifier: a.Identifier,
		RentAmount: a.RentAmount,
		Status:     status,
		Tenant:     a.Tenant,
	})
}

func (a *Apartment) UnmarshalJSON(data []byte) error {
	var aux apartmentJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ID = aux.ID
	a.Identifier = aux.Identifier
	a.RentAmount = aux.RentAmount
	a.Tenant = aux.Tenant
	return nil
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodPix, MethodTransfer, MethodCard, MethodOther:
		return true
	default:
		return false
	}
}

// Label returns the display name used on screen and in reports.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Dinheiro"
	case MethodPix:
		return "PIX"
	case MethodTransfer:
		return "Transferência"
	case MethodCard:
		return "Cartão"
	case MethodOther:
		return "Outro"
	default:
		return string(m)
	}
}

// NewDate creates a naive calendar date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Snapshots store dates as plain calendar days.
const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// FormatBR renders the date as day/month/year.
func (d Date) FormatBR() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

func (p Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	for _, apt := range p.Apartments {
		if err := apt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a Apartment) Validate() error {
	if strings.TrimSpace(a.Identifier) == "" {
		return ErrEmptyIdentifier
	}
	if a.Tenant != nil {
		return a.Tenant.Validate()
	}
	return nil
}

// Validate checks structural invariants. Amounts are deliberately not
// range-checked here: zero or negative values are a form-layer concern.
func (t Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	// Days above 28 do not exist in every month; the due date must be
	// constructible in any target period.
	if t.DueDay < 1 || t.DueDay > 28 {
		return ErrInvalidDueDay
	}
	for _, pay := range t.Payments {
		if err := pay.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p Payment) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if !p.Method.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

// Period identifies the billing cycle the payment settles.
func (p Payment) Period() Period {
	return Period{Month: p.Month, Year: p.Year}
}
