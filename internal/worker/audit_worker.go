// Package worker contains the background consumer that turns change
// events into an append-only audit trail and periodically logs how the
// portfolio is doing.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"frota/internal/amqp"
	"frota/internal/core"
	"frota/internal/store"
)

// AuditRecord is one line of the audit trail.
type AuditRecord struct {
	Kind        string    `json:"kind"`
	PropertyID  string    `json:"propertyId,omitempty"`
	ApartmentID string    `json:"apartmentId,omitempty"`
	TenantID    string    `json:"tenantId,omitempty"`
	PaymentID   string    `json:"paymentId,omitempty"`
	Month       int       `json:"month,omitempty"`
	Year        int       `json:"year,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// AuditWorker appends change events to a JSONL file and reports
// portfolio-wide payment status on a schedule.
type AuditWorker struct {
	repo store.PropertyRepository
	path string

	mu sync.Mutex
	// test hook
	now func() time.Time
}

func NewAuditWorker(repo store.PropertyRepository, auditPath string) *AuditWorker {
	return &AuditWorker{
		repo: repo,
		path: auditPath,
		now:  time.Now,
	}
}

// HandleChangeEvent writes one audit line per consumed event. The file
// is opened per write so log rotation can truncate it safely.
func (w *AuditWorker) HandleChangeEvent(ctx context.Context, ev *amqp.ChangeEvent) error {
	rec := AuditRecord{
		Kind:        ev.Kind,
		PropertyID:  ev.PropertyID,
		ApartmentID: ev.ApartmentID,
		TenantID:    ev.TenantID,
		PaymentID:   ev.PaymentID,
		Month:       ev.Month,
		Year:        ev.Year,
		OccurredAt:  ev.Timestamp,
		RecordedAt:  w.now().UTC(),
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}

	slog.InfoContext(ctx, "Audit record written",
		"kind", ev.Kind,
		"property_id", ev.PropertyID)
	return nil
}

// LogOverdueSummary loads the snapshot and logs, per property, what the
// current period looks like. Read only, never mutates the snapshot.
func (w *AuditWorker) LogOverdueSummary(ctx context.Context) error {
	props, err := w.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	now := w.now()
	period := core.PeriodOf(now)

	var totalOverdue, totalPending int
	for _, prop := range props {
		summary := core.Summarize(prop, period, now)
		totalOverdue += summary.OverdueCount
		totalPending += summary.PendingCount

		slog.InfoContext(ctx, "Property payment summary",
			"property_id", prop.ID,
			"property", prop.Name,
			"period", period.Label(),
			"received", summary.TotalReceived.String(),
			"pending", summary.TotalPending.String(),
			"overdue_count", summary.OverdueCount)
	}

	slog.InfoContext(ctx, "Portfolio payment summary",
		"period", period.Label(),
		"properties", len(props),
		"pending_count", totalPending,
		"overdue_count", totalOverdue)
	return nil
}

// RunSummaryLoop emits the overdue summary on each tick until the
// context is cancelled.
func (w *AuditWorker) RunSummaryLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.LogOverdueSummary(ctx); err != nil {
				slog.ErrorContext(ctx, "Overdue summary failed", "error", err)
			}
		}
	}
}
