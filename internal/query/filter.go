package query

import (
	"sort"
	"strings"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// Filter selects transactions; all present fields must match (logical AND).
// A zero-value field means "no constraint", not "match empty".
type Filter struct {
	StartDate       string // inclusive ISO date
	EndDate         string // inclusive ISO date
	Description     string // case-insensitive substring
	WhoPaid         string
	Account         string
	MethodOfPayment string
	Type            model.Type
	ParentAccount   string
	Person          string // payer or beneficiary membership
}

// Match reports whether t satisfies every constraint set on f.
// Date comparisons are lexicographic, which is correct for ISO dates.
func (f Filter) Match(t model.Transaction) bool {
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	if f.Description != "" &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.WhoPaid != "" && t.WhoPaid != f.WhoPaid {
		return false
	}
	if f.Account != "" && t.Account != f.Account {
		return false
	}
	if f.MethodOfPayment != "" && t.MethodOfPayment != f.MethodOfPayment {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.ParentAccount != "" && t.ParentAccount != f.ParentAccount {
		return false
	}
	if f.Person != "" && !t.InvolvesPerson(strings.TrimSpace(f.Person)) {
		return false
	}
	return true
}

// Apply returns the transactions matching f, preserving input order.
func Apply(txns []model.Transaction, f Filter) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDateDesc orders transactions newest first. The sort is stable so
// same-day entries keep their ledger order.
func SortByDateDesc(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date > txns[j].Date
	})
}
