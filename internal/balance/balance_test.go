package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(payer, users, amount string) model.Transaction {
	return model.Transaction{
		Date:        "2025-01-15",
		Description: "test expense",
		Amount:      dec(amount),
		WhoPaid:     payer,
		WhoWillUse:  users,
		Type:        model.TypeExpense,
	}
}

func TestCalculate_TwoWaySplit(t *testing.T) {
	// Alice fronts 100 for herself and Bob.
	got := Calculate([]model.Transaction{expense("Alice", "Alice, Bob", "100")})

	require.Len(t, got, 2)
	assert.True(t, dec("50").Equal(got["Alice"]), "Alice: %s", got["Alice"])
	assert.True(t, dec("-50").Equal(got["Bob"]), "Bob: %s", got["Bob"])
}

func TestCalculate_PayerCreditedFullAmount(t *testing.T) {
	// Alice pays 30 for B, C, D (not herself): +30 for her, -10 each.
	got := Calculate([]model.Transaction{expense("Alice", "Bob, Carol, Dave", "30")})

	assert.True(t, dec("30").Equal(got["Alice"]))
	for _, p := range []string{"Bob", "Carol", "Dave"} {
		assert.True(t, dec("-10").Equal(got[p]), "%s: %s", p, got[p])
	}
}

func TestCalculate_ZeroSum(t *testing.T) {
	txns := []model.Transaction{
		expense("Alice", "Alice, Bob, Carol", "100"),
		expense("Bob", "Alice, Bob", "33.34"),
		expense("Carol", "Carol", "7.77"),
		expense("Alice", "Bob", "0.01"),
	}
	got := Calculate(txns)

	sum := decimal.Zero
	for _, b := range got {
		sum = sum.Add(b)
	}
	assert.True(t, sum.Abs().LessThan(dec("0.000001")), "sum = %s", sum)
}

func TestCalculate_NoBeneficiariesNoEffect(t *testing.T) {
	got := Calculate([]model.Transaction{expense("Alice", "", "100")})
	assert.True(t, got["Alice"].IsZero(), "no beneficiaries means no split")
}

func TestCalculate_CountsAllTypes(t *testing.T) {
	income := expense("Alice", "Alice, Bob", "100")
	income.Type = model.TypeIncome
	got := Calculate([]model.Transaction{income})
	assert.True(t, dec("50").Equal(got["Alice"]), "the net view includes income entries")
}

func TestRoommateBreakdown_PayerAmongBeneficiaries(t *testing.T) {
	roommates := []string{"Alice", "Bob", "Carol"}
	txns := []model.Transaction{expense("Alice", "Alice, Bob, Carol", "90")}

	got := RoommateBreakdown(txns, roommates, "")

	require.Contains(t, got, "Alice")
	assert.True(t, dec("90").Equal(got["Alice"].Spent))
	assert.True(t, dec("60").Equal(got["Alice"].Owed), "amount minus own share")
	assert.True(t, dec("30").Equal(got["Bob"].Owes))
	assert.True(t, dec("30").Equal(got["Carol"].Owes))
	assert.True(t, dec("60").Equal(got["Alice"].Balance))
	assert.True(t, dec("-30").Equal(got["Bob"].Balance))
}

func TestRoommateBreakdown_ExcludesDefaultPerson(t *testing.T) {
	roommates := []string{"Me", "Alice", "Bob"}
	txns := []model.Transaction{expense("Me", "Me, Alice, Bob", "30")}

	got := RoommateBreakdown(txns, roommates, "Me")

	assert.NotContains(t, got, "Me")
	assert.True(t, got["Alice"].Spent.IsZero(), "default person's spending is not tracked")
	assert.True(t, dec("10").Equal(got["Alice"].Owes))
	assert.True(t, dec("10").Equal(got["Bob"].Owes))
}

func TestRoommateBreakdown_DefaultPersonCoversEveryone(t *testing.T) {
	// No beneficiary list and the default person paid: the cost spreads
	// evenly over all tracked roommates.
	roommates := []string{"Me", "Alice", "Bob"}
	txns := []model.Transaction{expense("Me", "", "50")}

	got := RoommateBreakdown(txns, roommates, "Me")

	assert.True(t, dec("25").Equal(got["Alice"].Owes))
	assert.True(t, dec("25").Equal(got["Bob"].Owes))
	assert.True(t, dec("-25").Equal(got["Alice"].Balance))
}

func TestRoommateBreakdown_EmptyBeneficiariesNonDefaultPayer(t *testing.T) {
	roommates := []string{"Alice", "Bob"}
	txns := []model.Transaction{expense("Alice", "", "50")}

	got := RoommateBreakdown(txns, roommates, "")

	assert.True(t, dec("50").Equal(got["Alice"].Spent))
	assert.True(t, got["Alice"].Owes.IsZero())
	assert.True(t, got["Bob"].Owes.IsZero())
}

func TestRoommateBreakdown_IgnoresIncome(t *testing.T) {
	roommates := []string{"Alice", "Bob"}
	income := expense("Alice", "Alice, Bob", "100")
	income.Type = model.TypeIncome

	got := RoommateBreakdown([]model.Transaction{income}, roommates, "")
	assert.True(t, got["Alice"].Spent.IsZero())
	assert.True(t, got["Bob"].Owes.IsZero())
}

func TestSpendingOverview(t *testing.T) {
	income := expense("Alice", "Alice", "500")
	income.Type = model.TypeIncome
	txns := []model.Transaction{
		expense("Alice", "Alice, Bob", "120"),
		expense("Bob", "Bob", "30"),
		income,
	}

	got := SpendingOverview(txns)
	assert.True(t, dec("150").Equal(got.TotalSpent))
	assert.True(t, dec("500").Equal(got.TotalIncome))
	assert.True(t, dec("350").Equal(got.NetAmount))
	assert.Equal(t, 3, got.TransactionCount)
}
