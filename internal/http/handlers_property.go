package http

import (
	"log/slog"
	"net/http"

	"frota/internal/services"
)

func (s *Server) parsePropertyInput(r *http.Request) (services.PropertyInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.PropertyInput{}, err
	}
	water, err := parseMoney(r.Form, "waterSewerMonthly")
	if err != nil {
		return services.PropertyInput{}, err
	}
	return services.PropertyInput{
		Name:              sanitizeInput(r.Form.Get("name")),
		Address:           sanitizeInput(r.Form.Get("address")),
		EnelRegistry:      sanitizeInput(r.Form.Get("enelRegistry")),
		ElectricPanel:     sanitizeInput(r.Form.Get("electricPanel")),
		WaterSewerMonthly: water,
	}, nil
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	in, err := s.parsePropertyInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	prop, err := s.svc.CreateProperty(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Property created",
		"property_id", prop.ID,
		"property", prop.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	in, err := s.parsePropertyInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	propertyID := pathParam(r, "propertyID")
	if _, err := s.svc.UpdateProperty(r.Context(), propertyID, in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := pathParam(r, "propertyID")
	if err := s.svc.DeleteProperty(r.Context(), propertyID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Property deleted", "property_id", propertyID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) parseApartmentInput(r *http.Request) (services.ApartmentInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.ApartmentInput{}, err
	}
	rent, err := parseMoney(r.Form, "rentAmount")
	if err != nil {
		return services.ApartmentInput{}, err
	}
	return services.ApartmentInput{
		Identifier: sanitizeInput(r.Form.Get("identifier")),
		RentAmount: rent,
	}, nil
}

func (s *Server) handleAddApartment(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseApartmentInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	propertyID := pathParam(r, "propertyID")
	apt, err := s.svc.AddApartment(r.Context(), propertyID, in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Apartment added",
		"property_id", propertyID,
		"apartment_id", apt.ID,
		"identifier", apt.Identifier)
	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleUpdateApartment(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseApartmentInput(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	propertyID := pathParam(r, "propertyID")
	if _, err := s.svc.UpdateApartment(r.Context(), propertyID, pathParam(r, "apartmentID"), in); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	redirectToProperty(w, r, propertyID)
}

func (s *Server) handleDeleteApartment(w http.ResponseWriter, r *http.Request) {
	propertyID := pathParam(r, "propertyID")
	if err := s.svc.DeleteApartment(r.Context(), propertyID, pathParam(r, "apartmentID")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Purge()

	redirectToProperty(w, r, propertyID)
}
