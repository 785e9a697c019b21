package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/splitbooks-dev/splitbooks/internal/csvimport"
	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// GenericParser parses the common date,description,amount bank export shape.
// Negative amounts become expenses, positive amounts income; either way the
// candidate carries the absolute value since the ledger stores amounts
// non-negative.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 3
	genericColDate    = 0
	genericColDesc    = 1
	genericColAmount  = 2
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV and returns candidates. The first row is a header.
func (p *GenericParser) Parse(r io.Reader) ([]Candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var candidates []Candidate
	for i, rec := range records[1:] {
		c, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func parseGenericRow(rec []string) (Candidate, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return Candidate{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := csvimport.ParseAmount(rec[genericColAmount])
	if err != nil {
		return Candidate{}, err
	}

	txnType := model.TypeExpense
	if amount.IsPositive() {
		txnType = model.TypeIncome
	}

	return Candidate{
		Date:        date.Format(model.DateFormat),
		Description: rec[genericColDesc],
		Amount:      amount.Abs(),
		Type:        txnType,
	}, nil
}
