package importer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitbooks-dev/splitbooks/internal/ledger"
	"github.com/splitbooks-dev/splitbooks/internal/model"
)

func TestGenericParser(t *testing.T) {
	input := "date,description,amount\n" +
		"2025-01-15,COFFEE SHOP,-4.50\n" +
		"2025-01-16,PAYROLL,\"$1,200.00\"\n"

	p := &GenericParser{}
	got, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2025-01-15", got[0].Date)
	assert.Equal(t, "COFFEE SHOP", got[0].Description)
	assert.Equal(t, model.TypeExpense, got[0].Type)
	assert.True(t, decimal.RequireFromString("4.50").Equal(got[0].Amount), "amounts stored non-negative")

	assert.Equal(t, model.TypeIncome, got[1].Type)
	assert.True(t, decimal.RequireFromString("1200").Equal(got[1].Amount))
}

func TestGenericParser_BadDate(t *testing.T) {
	input := "date,description,amount\n01/15/2025,COFFEE,-4.50\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	got, err := (&GenericParser{}).Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCandidateTransaction(t *testing.T) {
	c := Candidate{
		Date:        "2025-01-15",
		Description: "Dinner",
		Amount:      decimal.RequireFromString("60"),
		WhoPaid:     "Alice",
		WhoWillUse:  "Alice, Bob",
		Type:        model.TypeExpense,
	}
	txn := c.Transaction()
	assert.Equal(t, "Dinner", txn.Description)
	assert.Empty(t, txn.ID, "ids are assigned by the ledger, not the source")
	assert.True(t, decimal.RequireFromString("30").Equal(txn.SplitAmount()))
}

// fakeReceiptService plays both collaborator roles for seam tests.
type fakeReceiptService struct {
	result     ExtractResult
	candidates []Candidate
}

func (f *fakeReceiptService) Extract(ctx context.Context, image []byte) (ExtractResult, error) {
	return f.result, nil
}

func (f *fakeReceiptService) Fetch(ctx context.Context, accessToken string, daysBack int) ([]Candidate, error) {
	return f.candidates, nil
}

func TestReceiptExtractorFeedsLedger(t *testing.T) {
	var extractor ReceiptExtractor = &fakeReceiptService{
		result: ExtractResult{
			OK:      true,
			RawText: "COFFEE SHOP 4.50",
			Candidates: []Candidate{{
				Date:        "2025-01-15",
				Description: "COFFEE SHOP",
				Amount:      decimal.RequireFromString("4.50"),
				Type:        model.TypeExpense,
			}},
		},
	}

	res, err := extractor.Extract(context.Background(), []byte("fake image"))
	require.NoError(t, err)
	require.True(t, res.OK)
	require.Len(t, res.Candidates, 1)

	s := ledger.Open(filepath.Join(t.TempDir(), "transactions.json"))
	require.NoError(t, s.SetDefaultPerson("Alice"))

	txn := res.Candidates[0].Transaction()
	require.NoError(t, s.Add(&txn))

	got, ok := s.Get(txn.ID)
	require.True(t, ok)
	assert.Equal(t, "COFFEE SHOP", got.Description)
	assert.Equal(t, "Alice", got.WhoPaid, "payer backfilled by the ledger")
	assert.Equal(t, model.TypeExpense, got.Type)
}

func TestBankFetcherFeedsLedger(t *testing.T) {
	var fetcher BankFetcher = &fakeReceiptService{
		candidates: []Candidate{
			{Date: "2025-01-14", Description: "PAYROLL", Amount: decimal.RequireFromString("1200"), Type: model.TypeIncome},
			{Date: "2025-01-15", Description: "GROCERY MART", Amount: decimal.RequireFromString("63.20"), Type: model.TypeExpense},
		},
	}

	candidates, err := fetcher.Fetch(context.Background(), "access-token", 30)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	s := ledger.Open(filepath.Join(t.TempDir(), "transactions.json"))
	require.NoError(t, s.SetDefaultPerson("Alice"))

	for _, c := range candidates {
		txn := c.Transaction()
		require.NoError(t, s.Add(&txn))
	}
	assert.Equal(t, 2, s.Count())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"), "format lookup is case-insensitive")
	assert.Nil(t, r.Get("unknown"))
	assert.Contains(t, r.Formats(), "generic")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := DefaultRegistry()
	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}
