package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"frota/internal/auth"
	"frota/internal/core"
	"frota/internal/store"
)

// monthOption feeds the period selector.
type monthOption struct {
	Number int
	Name   string
}

func monthOptions() []monthOption {
	opts := make([]monthOption, 0, 12)
	for i, name := range core.MonthNames {
		opts = append(opts, monthOption{Number: i + 1, Name: name})
	}
	return opts
}

// yearOptions spans from the earliest ledger year up to next year, so
// past periods stay reachable and the next cycle can be prepared.
func yearOptions(props []core.Property, now time.Time) []int {
	earliest := now.Year()
	for _, prop := range props {
		for _, apt := range prop.Apartments {
			if apt.Tenant != nil {
				if y := apt.Tenant.Payments.EarliestYear(earliest); y < earliest {
					earliest = y
				}
			}
		}
	}

	years := make([]int, 0, now.Year()-earliest+2)
	for y := earliest; y <= now.Year()+1; y++ {
		years = append(years, y)
	}
	return years
}

// parsePeriod extracts month and year from query parameters, defaulting
// to the current period. Out-of-range months fall back to the current
// month rather than erroring; the selector can only produce valid ones.
func parsePeriod(r *http.Request, now time.Time) core.Period {
	period := core.PeriodOf(now)

	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			period.Month = m
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 1900 && y <= 9999 {
			period.Year = y
		}
	}
	return period
}

// parseMoney reads a money form field; empty means zero.
func parseMoney(form url.Values, key string) (core.Money, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return core.Money{}, nil
	}
	return core.ParseMoney(v)
}

// parseDate parses a date input field (YYYY-MM-DD), defaulting to today.
func parseDate(form url.Values, key string, now time.Time) (core.Date, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// writeDomainError maps domain errors onto HTTP statuses with the
// pt-BR messages the UI shows.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Erro interno. Tente novamente."

	switch {
	case errors.Is(err, core.ErrPropertyNotFound):
		status, msg = http.StatusNotFound, "Imóvel não encontrado"
	case errors.Is(err, core.ErrApartmentNotFound):
		status, msg = http.StatusNotFound, "Apartamento não encontrado"
	case errors.Is(err, core.ErrPaymentNotFound):
		status, msg = http.StatusNotFound, "Pagamento não encontrado"
	case errors.Is(err, core.ErrApartmentOccupied):
		status, msg = http.StatusConflict, "Apartamento já tem inquilino"
	case errors.Is(err, core.ErrApartmentVacant):
		status, msg = http.StatusConflict, "Apartamento está vazio"
	case errors.Is(err, core.ErrEmptyName):
		status, msg = http.StatusUnprocessableEntity, "Nome é obrigatório"
	case errors.Is(err, core.ErrEmptyIdentifier):
		status, msg = http.StatusUnprocessableEntity, "Identificador é obrigatório"
	case errors.Is(err, core.ErrInvalidDueDay):
		status, msg = http.StatusUnprocessableEntity, "Dia de vencimento deve estar entre 1 e 28"
	case errors.Is(err, core.ErrInvalidMonth):
		status, msg = http.StatusUnprocessableEntity, "Mês inválido"
	case errors.Is(err, core.ErrInvalidMethod):
		status, msg = http.StatusUnprocessableEntity, "Forma de pagamento inválida"
	case errors.Is(err, core.ErrInvalidAmount):
		status, msg = http.StatusUnprocessableEntity, "Valor inválido"
	case errors.Is(err, auth.ErrBadCredentials):
		status, msg = http.StatusUnauthorized, "Telefone ou senha incorretos"
	case errors.Is(err, store.ErrSnapshotCorrupt):
		status, msg = http.StatusInternalServerError, "Dados corrompidos. Verifique o arquivo de dados."
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
	}
	http.Error(w, msg, status)
}

// render executes a template into a buffer first so a template error
// never produces a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template render failed",
			"template", name,
			"error", err)
		http.Error(w, "Erro interno. Tente novamente.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func reportCacheKey(propertyID string, p core.Period) string {
	return propertyID + "|" + strconv.Itoa(p.Month) + "|" + strconv.Itoa(p.Year)
}

// redirectToProperty sends the browser back to the property page,
// keeping the selected period when present.
func redirectToProperty(w http.ResponseWriter, r *http.Request, propertyID string) {
	target := "/properties/" + url.PathEscape(propertyID)
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.RawQuery != "" {
			target += "?" + u.RawQuery
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
