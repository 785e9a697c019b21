// Package csvimport parses user-supplied transaction CSVs against the
// ledger's configured roommates, payment methods, and accounts. Bad rows
// become user-visible messages instead of aborting the whole import.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// Required CSV columns. Type and Parent Account are optional.
var requiredColumns = []string{
	"Date", "Description", "Amount", "Account", "Who Paid", "Who Will Use", "Method of Payment",
}

// Rules holds the configured sets each row is checked against.
type Rules struct {
	Roommates      []string
	PaymentMethods []string
	SubAccounts    []string
}

// Parse reads a transaction CSV and returns the valid candidates plus one
// message per rejected row ("Row N: ..."; the header is row 1). A header
// missing a required column fails the whole file.
func Parse(r io.Reader, rules Rules) ([]model.Transaction, []string) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, []string{fmt.Sprintf("Error reading CSV file: %v", err)}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))}
	}

	var (
		txns   []model.Transaction
		errors []string
	)
	for rowNum := 2; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		txn, rowErr := parseRow(record, col, rules)
		if rowErr != "" {
			errors = append(errors, fmt.Sprintf("Row %d: %s", rowNum, rowErr))
			continue
		}
		txns = append(txns, txn)
	}
	return txns, errors
}

func parseRow(record []string, col map[string]int, rules Rules) (model.Transaction, string) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var missing []string
	for _, name := range requiredColumns {
		if field(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return model.Transaction{}, "Missing required fields: " + strings.Join(missing, ", ")
	}

	whoPaid := field("Who Paid")
	if !containsName(rules.Roommates, whoPaid) {
		return model.Transaction{}, fmt.Sprintf("'Who Paid' (%s) not found in roommates list", whoPaid)
	}

	method := field("Method of Payment")
	if !containsName(rules.PaymentMethods, method) {
		return model.Transaction{}, fmt.Sprintf("'Method of Payment' (%s) not found in payment methods list", method)
	}

	account := field("Account")
	if !containsName(rules.SubAccounts, account) {
		return model.Transaction{}, fmt.Sprintf("'Account' (%s) not found in accounts list", account)
	}

	amount, err := ParseAmount(field("Amount"))
	if err != nil {
		return model.Transaction{}, "Invalid amount format: " + field("Amount")
	}

	txnType := model.Type(field("Type"))
	if txnType == "" {
		txnType = model.TypeExpense
	}
	parent := field("Parent Account")
	if parent == "" {
		parent = model.ParentUnset
	}

	return model.Transaction{
		Date:            field("Date"),
		Description:     field("Description"),
		Amount:          amount,
		Account:         account,
		WhoPaid:         whoPaid,
		WhoWillUse:      field("Who Will Use"),
		MethodOfPayment: method,
		Type:            txnType,
		ParentAccount:   parent,
	}, ""
}

// ParseAmount parses a currency value, accepting a leading "$" and
// thousands commas.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

func containsName(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}
