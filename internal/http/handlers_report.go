package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"frota/internal/core"
	"frota/internal/report"
)

// handlePropertyReport serves the printable property document. The
// page prints itself on load; the browser's print dialog takes it from
// there.
func (s *Server) handlePropertyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	prop, err := s.svc.GetProperty(r.Context(), pathParam(r, "propertyID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rep := report.BuildProperty(prop, period, now)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Property(w, rep); err != nil {
		slog.ErrorContext(r.Context(), "Property report render failed",
			"property_id", prop.ID,
			"error", err)
	}
}

// handleTenantReport serves the printable tenant document.
func (s *Server) handleTenantReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	prop, err := s.svc.GetProperty(r.Context(), pathParam(r, "propertyID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	apartmentID := pathParam(r, "apartmentID")
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

	sinceYear := period.Year
	if apt.Tenant != nil {
		sinceYear = apt.Tenant.Payments.EarliestYear(period.Year)
	}
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

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Tenant(w, rep); err != nil {
		slog.ErrorContext(r.Context(), "Tenant report render failed",
			"property_id", prop.ID,
			"apartment_id", apartmentID,
			"error", err)
	}
}
