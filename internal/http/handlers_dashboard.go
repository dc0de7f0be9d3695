package http

import (
	"net/http"
	"time"

	"frota/internal/core"
	"frota/internal/report"
)

type dashboardView struct {
	Period  core.Period
	Reports []report.PropertyReport
	Months  []monthOption
	Years   []int
	Flash   string
}

type propertyView struct {
	Report report.PropertyReport
	Months []monthOption
	Years  []int
	Flash  string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	props, err := s.svc.ListProperties(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	reports := make([]report.PropertyReport, 0, len(props))
	for _, prop := range props {
		reports = append(reports, s.buildPropertyReport(prop, period, now))
	}

	s.render(w, r, "index.html", dashboardView{
		Period:  period,
		Reports: reports,
		Months:  monthOptions(),
		Years:   yearOptions(props, now),
	})
}

func (s *Server) handlePropertyPage(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	prop, err := s.svc.GetProperty(r.Context(), pathParam(r, "propertyID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.render(w, r, "property.html", propertyView{
		Report: s.buildPropertyReport(prop, period, now),
		Months: monthOptions(),
		Years:  yearOptions([]core.Property{prop}, now),
	})
}

// handleSummaryPartial serves the summary fragment for one property.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	period := parsePeriod(r, now)

	prop, err := s.svc.GetProperty(r.Context(), r.URL.Query().Get("property"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.render(w, r, "partial_summary.html", s.buildPropertyReport(prop, period, now))
}

// buildPropertyReport consults the short-lived cache before deriving.
// Every mutating handler purges the cache, so hits are always current.
func (s *Server) buildPropertyReport(prop core.Property, period core.Period, now time.Time) report.PropertyReport {
	key := reportCacheKey(prop.ID, period)
	if rep, ok := s.reportCache.Get(key); ok {
		return rep
	}
	rep := report.BuildProperty(prop, period, now)
	s.reportCache.Set(key, rep)
	return rep
}
