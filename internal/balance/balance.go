// Package balance turns the transaction list into who-owes-whom numbers.
//
// Two views coexist on purpose and do not reconcile to the same totals:
// Calculate is the global net-settlement view over every person and every
// transaction, while RoommateBreakdown is the roommate-centric view that
// excludes the ledger owner and only looks at expenses.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// Calculate returns each person's net balance across the full transaction
// set. The payer is credited the full amount; every beneficiary (the payer
// included, when listed) is debited an even share. Positive means the person
// is owed money, negative means they owe. The result sums to zero up to
// division rounding.
func Calculate(txns []model.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	ensure := func(person string) {
		if _, ok := balances[person]; !ok {
			balances[person] = decimal.Zero
		}
	}
	for _, t := range txns {
		if t.WhoPaid != "" {
			ensure(t.WhoPaid)
		}
		for _, b := range t.Beneficiaries() {
			ensure(b)
		}
	}

	for _, t := range txns {
		users := t.Beneficiaries()
		if len(users) == 0 {
			continue
		}
		share := t.Amount.Div(decimal.NewFromInt(int64(len(users))))

		balances[t.WhoPaid] = balances[t.WhoPaid].Add(t.Amount)
		for _, u := range users {
			balances[u] = balances[u].Sub(share)
		}
	}
	return balances
}

// RoommateTotals accumulates one roommate's side of the breakdown.
// Balance is Owed minus Owes.
type RoommateTotals struct {
	Spent   decimal.Decimal
	Owes    decimal.Decimal
	Owed    decimal.Decimal
	Balance decimal.Decimal
}

// RoommateBreakdown computes per-roommate spent/owes/owed totals over the
// expense transactions, restricted to roommates other than defaultPerson.
//
// For each expense: the payer's Spent grows by the full amount (when the
// payer is a tracked roommate). With a beneficiary list, the payer among the
// beneficiaries is Owed the amount minus their own share and every other
// listed roommate Owes one share. With no beneficiaries at all, a payment by
// defaultPerson is treated as covering all tracked roommates evenly.
func RoommateBreakdown(txns []model.Transaction, roommates []string, defaultPerson string) map[string]RoommateTotals {
	var tracked []string
	for _, r := range roommates {
		if r != defaultPerson {
			tracked = append(tracked, r)
		}
	}

	totals := make(map[string]*RoommateTotals, len(tracked))
	for _, r := range tracked {
		totals[r] = &RoommateTotals{}
	}

	for _, t := range txns {
		if t.Type != model.TypeExpense {
			continue
		}

		if rt, ok := totals[t.WhoPaid]; ok {
			rt.Spent = rt.Spent.Add(t.Amount)
		}

		users := t.Beneficiaries()
		switch {
		case len(users) > 0:
			share := t.Amount.Div(decimal.NewFromInt(int64(len(users))))
			for _, u := range users {
				rt, ok := totals[u]
				if !ok {
					continue
				}
				if u == t.WhoPaid {
					rt.Owed = rt.Owed.Add(t.Amount.Sub(share))
				} else {
					rt.Owes = rt.Owes.Add(share)
				}
			}
		case t.WhoPaid == defaultPerson && len(tracked) > 0:
			share := t.Amount.Div(decimal.NewFromInt(int64(len(tracked))))
			for _, r := range tracked {
				totals[r].Owes = totals[r].Owes.Add(share)
			}
		}
	}

	out := make(map[string]RoommateTotals, len(totals))
	for r, rt := range totals {
		rt.Balance = rt.Owed.Sub(rt.Owes)
		out[r] = *rt
	}
	return out
}

// Overview summarizes a transaction set for the dashboard header.
type Overview struct {
	TotalSpent       decimal.Decimal
	TotalIncome      decimal.Decimal
	NetAmount        decimal.Decimal
	TransactionCount int
}

// SpendingOverview totals expenses and income over txns. NetAmount is
// income minus spending.
func SpendingOverview(txns []model.Transaction) Overview {
	o := Overview{TransactionCount: len(txns)}
	for _, t := range txns {
		switch t.Type {
		case model.TypeExpense:
			o.TotalSpent = o.TotalSpent.Add(t.Amount)
		case model.TypeIncome:
			o.TotalIncome = o.TotalIncome.Add(t.Amount)
		}
	}
	o.NetAmount = o.TotalIncome.Sub(o.TotalSpent)
	return o
}
