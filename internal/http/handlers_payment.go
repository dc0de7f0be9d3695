package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frota/internal/core"
	"frota/internal/report"
	"frota/internal/services"
)

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	now := time.Now()
	period := core.PeriodOf(now)
	if v := strings.TrimSpace(r.Form.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			period.Month = m
		}
	}
	if v := strings.TrimSpace(r.Form.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			period.Year = y
		}
	}

	amount, err := parseMoney(r.Form, "amount")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := parseDate(r.Form, "date", now)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	in := services.PaymentInput{
		Month:  period.Month,
		Year:   period.Year,
		Amount: amount,
		Date:   date,
		Method: core.PaymentMethod(r.Form.Get("method")),
	}

	propertyID := pathParam(r, "propertyID")
	apartmentID := pathParam(r, "apartmentID")

	pay, err := s.svc.RecordPayment(r.Context(), propertyID, apartmentID, in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Payment recorded",
		"property_id", propertyID,
		"apartment_id", apartmentID,
		"payment_id", pay.ID,
		"month", pay.Month,
		"year", pay.Year,
		"amount_cents", pay.Amount.Cents)
	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	propertyID := pathParam(r, "propertyID")
	apartmentID := pathParam(r, "apartmentID")
	paymentID := pathParam(r, "paymentID")

	if err := s.svc.DeletePayment(r.Context(), propertyID, apartmentID, paymentID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Payment deleted",
		"property_id", propertyID,
		"apartment_id", apartmentID,
		"payment_id", paymentID)
	redirectToProperty(w, r, propertyID)
}

// handleHistoryPartial serves the payment history fragment for one
// occupied apartment. "since" limits the history to years >= since;
// the default is the tenant's earliest ledger year.
func (s *Server) handleHistoryPartial(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	prop, err := s.svc.GetProperty(r.Context(), r.URL.Query().Get("property"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	apartmentID := r.URL.Query().Get("apartment")
	var apt *core.Apartment
	for i := range prop.Apartments {
		if prop.Apartments[i].ID == apartmentID {
			apt = &prop.Apartments[i]
			break
		}
	}
	if apt == nil {
		writeDomainError(w, r, core.ErrApartmentNotFound)
		return
	}
	if apt.Tenant == nil {
		writeDomainError(w, r, core.ErrApartmentVacant)
		return
	}

	sinceYear := apt.Tenant.Payments.EarliestYear(now.Year())
	if v := strings.TrimSpace(r.URL.Query().Get("since")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			sinceYear = y
		}
	}

	rep, err := report.BuildTenant(prop, *apt, period, sinceYear, now)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.render(w, r, "partial_history.html", rep)
}
