// Package importer defines the collaborator seams that feed the ledger:
// receipt image extraction, bank transaction fetching, and bank statement
// CSV parsing. The engine never talks to an OCR service or a bank API
// directly; it accepts anything that can produce Candidates.
package importer

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// Candidate is a proposed ledger entry from an external source. It carries
// the same field set as a Transaction minus the generated bookkeeping; the
// ledger applies defaults and validation when it is added.
type Candidate struct {
	Date            string
	Description     string
	Amount          decimal.Decimal
	Account         string
	WhoPaid         string
	WhoWillUse      string
	MethodOfPayment string
	Type            model.Type
	ParentAccount   string
}

// Transaction converts the candidate into an unstamped ledger entry.
func (c Candidate) Transaction() model.Transaction {
	return model.Transaction{
		Date:            c.Date,
		Description:     c.Description,
		Amount:          c.Amount,
		Account:         c.Account,
		WhoPaid:         c.WhoPaid,
		WhoWillUse:      c.WhoWillUse,
		MethodOfPayment: c.MethodOfPayment,
		Type:            c.Type,
		ParentAccount:   c.ParentAccount,
	}
}

// ExtractResult is what a vision service returns for one receipt image.
type ExtractResult struct {
	Candidates []Candidate
	RawText    string
	OK         bool
}

// ReceiptExtractor turns a receipt or statement image into candidates.
type ReceiptExtractor interface {
	Extract(ctx context.Context, image []byte) (ExtractResult, error)
}

// BankFetcher pulls recent transactions for a linked bank account.
type BankFetcher interface {
	Fetch(ctx context.Context, accessToken string, daysBack int) ([]Candidate, error)
}

// StatementParser converts a bank CSV export into candidates.
type StatementParser interface {
	Parse(r io.Reader) ([]Candidate, error)
	Format() string
}

// Registry holds named statement parsers.
type Registry struct {
	parsers map[string]StatementParser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]StatementParser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p StatementParser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) StatementParser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered parser names.
func (r *Registry) Formats() []string {
	var out []string
	for k := range r.parsers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}
