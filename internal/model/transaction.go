package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/id"
)

// Type classifies a transaction as money out or money in.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

const (
	// DateFormat is the ISO calendar-date layout used by the Date field.
	DateFormat = "2006-01-02"
	// TimestampFormat is the layout for CreatedAt/UpdatedAt.
	TimestampFormat = time.RFC3339

	// ParentUnset is the placeholder parent category for uncategorized entries.
	ParentUnset = "Select"
)

// Transaction is one ledger entry: who paid what, and who it was for.
// WhoWillUse holds the beneficiaries as a comma-separated list; amounts are
// stored non-negative with Type carrying the expense/income direction.
// Field tags match the persisted JSON layout exactly.
type Transaction struct {
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Account         string          `json:"account"`
	WhoPaid         string          `json:"who_paid"`
	WhoWillUse      string          `json:"who_will_use"`
	MethodOfPayment string          `json:"method_of_payment"`
	Type            Type            `json:"type"`
	ParentAccount   string          `json:"parent_account"`
	ID              string          `json:"id"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// Init fills the generated fields of a newly constructed transaction:
// a fresh ID when none was supplied, the expense/parent defaults, and the
// creation/update stamps. CreatedAt is stamped once; UpdatedAt always.
func (t *Transaction) Init(now time.Time) {
	if t.ID == "" {
		t.ID = id.New()
	}
	if t.Type == "" {
		t.Type = TypeExpense
	}
	if t.ParentAccount == "" {
		t.ParentAccount = ParentUnset
	}
	stamp := now.Format(TimestampFormat)
	if t.CreatedAt == "" {
		t.CreatedAt = stamp
	}
	t.UpdatedAt = stamp
}

// Touch restamps UpdatedAt after a field mutation.
func (t *Transaction) Touch(now time.Time) {
	t.UpdatedAt = now.Format(TimestampFormat)
}

// Beneficiaries returns the trimmed, non-empty members of WhoWillUse.
func (t Transaction) Beneficiaries() []string {
	var people []string
	for _, p := range strings.Split(t.WhoWillUse, ",") {
		if p = strings.TrimSpace(p); p != "" {
			people = append(people, p)
		}
	}
	return people
}

// SplitAmount returns the per-beneficiary share: Amount divided evenly among
// the beneficiaries, rounded half-up to 2 decimal places. Zero when the
// transaction has no beneficiaries.
func (t Transaction) SplitAmount() decimal.Decimal {
	n := len(t.Beneficiaries())
	if n == 0 {
		return decimal.Zero
	}
	return t.Amount.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// InvolvesPerson reports whether person is the payer or a beneficiary.
func (t Transaction) InvolvesPerson(person string) bool {
	if t.WhoPaid == person {
		return true
	}
	for _, b := range t.Beneficiaries() {
		if b == person {
			return true
		}
	}
	return false
}

// FormattedAmount renders the amount as a currency string like "$1,234.56".
func (t Transaction) FormattedAmount() string {
	s := t.Amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if t.Amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// AmountClass returns the sign-based display class used by the web views.
func (t Transaction) AmountClass() string {
	switch {
	case t.Amount.IsNegative():
		return "text-red-600"
	case t.Amount.IsPositive():
		return "text-green-600"
	default:
		return "text-gray-600"
	}
}
