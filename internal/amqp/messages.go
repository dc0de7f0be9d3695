package amqp

import (
	"encoding/json"
	"time"
)

const (
	ChangePropertySaved   = "property_saved"
	ChangePropertyDeleted = "property_deleted"
	ChangeTenantAssigned  = "tenant_assigned"
	ChangeTenantRemoved   = "tenant_removed"
	ChangePaymentRecorded = "payment_recorded"
	ChangePaymentDeleted  = "payment_deleted"
)

// ChangeEvent notifies interested consumers (the audit worker) that
// the snapshot changed. Events are best effort: the edit has already
// been persisted when one is published, and delivery failures never
// fail the edit.
type ChangeEvent struct {
	Kind        string    `json:"kind"`
	PropertyID  string    `json:"property_id,omitempty"`
	ApartmentID string    `json:"apartment_id,omitempty"`
	TenantID    string    `json:"tenant_id,omitempty"`
	PaymentID   string    `json:"payment_id,omitempty"`
	Month       int       `json:"month,omitempty"`
	Year        int       `json:"year,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewChangeEvent(kind string) *ChangeEvent {
	return &ChangeEvent{Kind: kind, Timestamp: time.Now()}
}

func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
