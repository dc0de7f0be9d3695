package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"frota/internal/services"
)

func (s *Server) parseTenantInput(r *http.Request) (services.TenantInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.TenantInput{}, err
	}
	rent, err := parseMoney(r.Form, "rentAmount")
	if err != nil {
		return services.TenantInput{}, err
	}

	dueDay := 0
	if v := strings.TrimSpace(r.Form.Get("dueDay")); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			dueDay = d
		}
	}

	return services.TenantInput{
		Name:              sanitizeInput(r.Form.Get("name")),
		Phone:             sanitizeInput(r.Form.Get("phone")),
		CPF:               sanitizeInput(r.Form.Get("cpf")),
		RG:                sanitizeInput(r.Form.Get("rg")),
		Observations:      sanitizeInput(r.Form.Get("observations")),
		RentAmount:        rent,
		DueDay:            dueDay,
		DocumentPhoto:     sanitizeInput(r.Form.Get("documentPhoto")),
		HasActiveContract: r.Form.Get("hasActiveContract") != "",
	}, nil
}

func (s *Server) handleAssignTenant(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseTenantInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	propertyID := pathParam(r, "propertyID")
	apartmentID := pathParam(r, "apartmentID")

	tenant, err := s.svc.AssignTenant(r.Context(), propertyID, apartmentID, in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Tenant assigned",
		"property_id", propertyID,
		"apartment_id", apartmentID,
		"tenant_id", tenant.ID)
	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseTenantInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	propertyID := pathParam(r, "propertyID")
	if _, err := s.svc.UpdateTenant(r.Context(), propertyID, pathParam(r, "apartmentID"), in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleRemoveTenant(w http.ResponseWriter, r *http.Request) {
	propertyID := pathParam(r, "propertyID")
	apartmentID := pathParam(r, "apartmentID")

	if err := s.svc.RemoveTenant(r.Context(), propertyID, apartmentID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Tenant removed",
		"property_id", propertyID,
		"apartment_id", apartmentID)
	redirectToProperty(w, r, propertyID)
}
