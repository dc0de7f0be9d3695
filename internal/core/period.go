package core

import (
	"fmt"
	"time"
)

// Period identifies one billing cycle as a (month, year) pair.
// Equality is exact field match.
type Period struct {
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}

// Month names used on screen and in reports, indexed by month-1.
var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Compare orders periods for history listings: most recent first.
// It returns a negative value when p sorts before q (p is more recent),
// zero when equal, positive otherwise.
func (p Period) Compare(q Period) int {
	if p.Year != q.Year {
		return q.Year - p.Year
	}
	return q.Month - p.Month
}

// After reports whether p is a later calendar period than q.
func (p Period) After(q Period) bool {
	return p.Compare(q) < 0
}

// PeriodOf extracts the billing period a point in time falls into.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Label renders the period the way listings show it, e.g. "Março 2026".
func (p Period) Label() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("%d/%d", p.Month, p.Year)
	}
	return fmt.Sprintf("%s %d", MonthNames[p.Month-1], p.Year)
}
