package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"frota/internal/core"
	appweb "frota/web"
)

// Renderer turns built reports into self-contained printable HTML
// documents (inline styling, auto-print hook). It only formats; every
// figure arrives already derived.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded report templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("report").Funcs(Funcs()).ParseFS(appweb.TemplatesFS, "templates/report_*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Funcs returns the formatting helpers shared by the report templates
// and the dashboard partials.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"brl": func(m core.Money) string {
			return m.FormatBRL()
		},
		"dateBR": func(d core.Date) string {
			return d.FormatBR()
		},
		"datetimeBR": func(t time.Time) string {
			return t.Format("02/01/2006") + " às " + t.Format("15:04")
		},
		"statusClass": StatusClass,
	}
}

// StatusClass maps a status to the color class the surfaces share.
func StatusClass(s core.Status) string {
	switch s {
	case core.StatusPaid:
		return "green"
	case core.StatusPending:
		return "yellow"
	case core.StatusOverdue:
		return "red"
	default:
		return "gray"
	}
}

// Property writes the printable property document.
func (r *Renderer) Property(w io.Writer, rep PropertyReport) error {
	if err := r.tmpl.ExecuteTemplate(w, "report_property.html", rep); err != nil {
		return fmt.Errorf("render property report: %w", err)
	}
	return nil
}

// Tenant writes the printable tenant document.
func (r *Renderer) Tenant(w io.Writer, rep TenantReport) error {
	if err := r.tmpl.ExecuteTemplate(w, "report_tenant.html", rep); err != nil {
		return fmt.Errorf("render tenant report: %w", err)
	}
	return nil
}
