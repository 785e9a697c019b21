package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitbooks-dev/splitbooks/internal/id"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestInit_AssignsID(t *testing.T) {
	txn := Transaction{Date: "2025-01-15", Description: "Groceries", Amount: dec("42.50")}
	txn.Init(testTime)

	assert.True(t, id.Valid(txn.ID))
	assert.Equal(t, TypeExpense, txn.Type)
	assert.Equal(t, ParentUnset, txn.ParentAccount)
	assert.Equal(t, "2025-01-15T10:30:00Z", txn.CreatedAt)
	assert.Equal(t, "2025-01-15T10:30:00Z", txn.UpdatedAt)
}

func TestInit_KeepsSuppliedFields(t *testing.T) {
	txn := Transaction{
		ID:            "existing-id",
		Type:          TypeIncome,
		ParentAccount: "Employment",
		CreatedAt:     "2024-12-01T00:00:00Z",
	}
	txn.Init(testTime)

	assert.Equal(t, "existing-id", txn.ID)
	assert.Equal(t, TypeIncome, txn.Type)
	assert.Equal(t, "Employment", txn.ParentAccount)
	assert.Equal(t, "2024-12-01T00:00:00Z", txn.CreatedAt)
	assert.Equal(t, "2025-01-15T10:30:00Z", txn.UpdatedAt)
}

func TestTouch(t *testing.T) {
	txn := Transaction{}
	txn.Init(testTime)
	txn.Touch(testTime.Add(time.Hour))
	assert.Equal(t, "2025-01-15T10:30:00Z", txn.CreatedAt)
	assert.Equal(t, "2025-01-15T11:30:00Z", txn.UpdatedAt)
}

func TestBeneficiaries(t *testing.T) {
	tests := []struct {
		whoWillUse string
		want       []string
	}{
		{"Alice, Bob, Carol", []string{"Alice", "Bob", "Carol"}},
		{"Alice,Bob", []string{"Alice", "Bob"}},
		{"  Alice  ", []string{"Alice"}},
		{"Alice,,Bob, ", []string{"Alice", "Bob"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		txn := Transaction{WhoWillUse: tt.whoWillUse}
		assert.Equal(t, tt.want, txn.Beneficiaries(), "input: %q", tt.whoWillUse)
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		amount     string
		whoWillUse string
		want       string
	}{
		{"30", "A, B, C", "10"},
		{"10", "A, B, C", "3.33"},
		{"0.01", "A, B", "0.01"}, // half-up rounding of 0.005
		{"100", "Alice", "100"},
		{"50", "", "0"},
	}
	for _, tt := range tests {
		txn := Transaction{Amount: dec(tt.amount), WhoWillUse: tt.whoWillUse}
		assert.True(t, dec(tt.want).Equal(txn.SplitAmount()),
			"amount %s among %q: want %s, got %s", tt.amount, tt.whoWillUse, tt.want, txn.SplitAmount())
	}
}

func TestInvolvesPerson(t *testing.T) {
	txn := Transaction{WhoPaid: "Alice", WhoWillUse: "Bob, Carol"}
	assert.True(t, txn.InvolvesPerson("Alice"))
	assert.True(t, txn.InvolvesPerson("Bob"))
	assert.True(t, txn.InvolvesPerson("Carol"))
	assert.False(t, txn.InvolvesPerson("Dave"))
}

func TestFormattedAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1234.56", "$1,234.56"},
		{"1234567.8", "$1,234,567.80"},
		{"42.5", "$42.50"},
		{"0", "$0.00"},
		{"-99.99", "-$99.99"},
	}
	for _, tt := range tests {
		txn := Transaction{Amount: dec(tt.amount)}
		assert.Equal(t, tt.want, txn.FormattedAmount())
	}
}

func TestAmountClass(t *testing.T) {
	assert.Equal(t, "text-red-600", Transaction{Amount: dec("-5")}.AmountClass())
	assert.Equal(t, "text-green-600", Transaction{Amount: dec("5")}.AmountClass())
	assert.Equal(t, "text-gray-600", Transaction{}.AmountClass())
}

func TestFullEntry(t *testing.T) {
	txn := Transaction{
		Date:            "2025-01-15",
		Description:     "Rent",
		Amount:          dec("800"),
		WhoPaid:         "Alice",
		WhoWillUse:      "Alice, Bob",
		MethodOfPayment: "Bank Transfer",
		Type:            TypeExpense,
		ParentAccount:   "Housing",
		Account:         "Rent",
	}
	txn.Init(testTime)
	require.NotEmpty(t, txn.ID)
	assert.True(t, dec("400").Equal(txn.SplitAmount()))
}
