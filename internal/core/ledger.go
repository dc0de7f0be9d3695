package core

import "sort"

// Ledger is a tenant's payment history. It holds at most one payment
// per (month, year) period; Upsert is the only way records enter it.
type Ledger []Payment

// FindForPeriod returns the payment settling the given period, if any.
func (l Ledger) FindForPeriod(p Period) (Payment, bool) {
	for _, pay := range l {
		if pay.Period() == p {
			return pay, true
		}
	}
	return Payment{}, false
}

// Upsert records a payment. A payment already covering the same period
// is replaced in place; otherwise the payment is appended. The ledger
// never grows two records for one period.
func (l *Ledger) Upsert(pay Payment) {
	for i, existing := range *l {
		if existing.Period() == pay.Period() {
			(*l)[i] = pay
			return
		}
	}
	*l = append(*l, pay)
}

// Remove deletes the payment with the given id. Deleting an unknown id
// returns ErrPaymentNotFound; confirmation is a UI concern, not ours.
func (l *Ledger) Remove(paymentID string) error {
	for i, pay := range *l {
		if pay.ID == paymentID {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return nil
		}
	}
	return ErrPaymentNotFound
}

// History returns a fresh copy of the payments with year >= sinceYear,
// most recent period first. Each call recomputes from the ledger, so
// callers can iterate as often as they like.
func (l Ledger) History(sinceYear int) []Payment {
	out := make([]Payment, 0, len(l))
	for _, pay := range l {
		if pay.Year >= sinceYear {
			out = append(out, pay)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Period().Compare(out[j].Period()) < 0
	})
	return out
}

// EarliestYear returns the smallest payment year in the ledger, or the
// fallback when the ledger is empty.
func (l Ledger) EarliestYear(fallback int) int {
	year := fallback
	for i, pay := range l {
		if i == 0 || pay.Year < year {
			year = pay.Year
		}
	}
	return year
}
