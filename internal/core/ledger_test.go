package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pay(id string, month, year int, cents int64) Payment {
	return Payment{
		ID:     id,
		Month:  month,
		Year:   year,
		Amount: Money{Cents: cents},
		Date:   NewDate(year, month, 5),
		Method: MethodPix,
	}
}

func TestLedger_UpsertThenFind(t *testing.T) {
	var l Ledger
	l.Upsert(pay("p1", 3, 2026, 100000))

	got, ok := l.FindForPeriod(Period{Month: 3, Year: 2026})
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, int64(100000), got.Amount.Cents)
}

func TestLedger_UpsertReplacesSamePeriod(t *testing.T) {
	var l Ledger
	l.Upsert(pay("p1", 3, 2026, 100000))
	l.Upsert(pay("p2", 3, 2026, 95000))

	require.Len(t, l, 1, "second upsert for the same period must replace, not append")

	got, ok := l.FindForPeriod(Period{Month: 3, Year: 2026})
	require.True(t, ok)
	assert.Equal(t, "p2", got.ID)
	assert.Equal(t, int64(95000), got.Amount.Cents)
}

func TestLedger_UpsertDifferentPeriodsAppends(t *testing.T) {
	var l Ledger
	l.Upsert(pay("p1", 3, 2026, 100000))
	l.Upsert(pay("p2", 4, 2026, 100000))
	l.Upsert(pay("p3", 3, 2027, 100000))

	assert.Len(t, l, 3)
}

func TestLedger_Remove(t *testing.T) {
	l := Ledger{pay("p1", 3, 2026, 100000), pay("p2", 4, 2026, 100000)}

	require.NoError(t, l.Remove("p1"))
	assert.Len(t, l, 1)

	_, ok := l.FindForPeriod(Period{Month: 3, Year: 2026})
	assert.False(t, ok)

	err := l.Remove("missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.Len(t, l, 1)
}

func TestLedger_FindForPeriodAbsent(t *testing.T) {
	var l Ledger
	_, ok := l.FindForPeriod(Period{Month: 1, Year: 2026})
	assert.False(t, ok)
}

func TestLedger_HistoryFiltersAndSorts(t *testing.T) {
	l := Ledger{
		pay("a", 1, 2026, 100),
		pay("b", 12, 2025, 100),
		pay("c", 6, 2026, 100),
	}

	got := l.History(2026)

	require.Len(t, got, 2, "payments before sinceYear must be excluded")
	assert.Equal(t, Period{Month: 6, Year: 2026}, got[0].Period())
	assert.Equal(t, Period{Month: 1, Year: 2026}, got[1].Period())
}

func TestLedger_HistoryDoesNotMutateLedger(t *testing.T) {
	l := Ledger{pay("a", 1, 2026, 100), pay("b", 6, 2026, 100)}

	first := l.History(2000)
	second := l.History(2000)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", l[0].ID, "ledger order must stay untouched")
}

func TestLedger_EarliestYear(t *testing.T) {
	var empty Ledger
	assert.Equal(t, 2026, empty.EarliestYear(2026))

	l := Ledger{pay("a", 1, 2027, 100), pay("b", 12, 2025, 100), pay("c", 6, 2026, 100)}
	assert.Equal(t, 2025, l.EarliestYear(2030))
}

func TestPeriod_Compare(t *testing.T) {
	tests := []struct {
		name string
		p, q Period
		want int // sign only
	}{
		{"equal", Period{3, 2026}, Period{3, 2026}, 0},
		{"later year sorts first", Period{1, 2027}, Period{12, 2026}, -1},
		{"later month sorts first", Period{6, 2026}, Period{1, 2026}, -1},
		{"earlier sorts last", Period{1, 2026}, Period{6, 2026}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Compare(tt.q)
			switch {
			case tt.want == 0:
				assert.Zero(t, got)
			case tt.want < 0:
				assert.Negative(t, got)
			default:
				assert.Positive(t, got)
			}
		})
	}
}

func TestPeriod_Label(t *testing.T) {
	assert.Equal(t, "Março 2026", Period{Month: 3, Year: 2026}.Label())
	assert.Equal(t, "Dezembro 2025", Period{Month: 12, Year: 2025}.Label())
}
