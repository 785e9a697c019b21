package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/model"
	"github.com/splitbooks-dev/splitbooks/internal/query"
)

// schemaVersion is written into the metadata block of the data file.
const schemaVersion = "2.0"

// ErrDuplicate is returned by Add when a matching transaction already exists
// (same date, case-insensitive description, amount within a cent).
var ErrDuplicate = errors.New("duplicate transaction")

// ErrNotFound is returned by Update for an unknown transaction id.
var ErrNotFound = errors.New("transaction not found")

// amounts within this tolerance count as equal for duplicate detection
var dupTolerance = decimal.RequireFromString("0.01")

// Metadata is the bookkeeping block of the data file.
type Metadata struct {
	Version     string `json:"version"`
	CreatedAt   string `json:"created_at"`
	LastUpdated string `json:"last_updated"`
}

// fileSchema is the persisted JSON layout.
type fileSchema struct {
	Transactions   []model.Transaction `json:"transactions"`
	Roommates      []string            `json:"roommates"`
	ParentAccounts *Taxonomy           `json:"parent_accounts"`
	PaymentMethods []string            `json:"payment_methods"`
	DefaultPerson  string              `json:"default_person"`
	Metadata       Metadata            `json:"metadata"`
}

// loadSchema keeps transactions raw so one malformed entry cannot take the
// rest of the file down with it.
type loadSchema struct {
	Transactions   []json.RawMessage `json:"transactions"`
	Roommates      []string          `json:"roommates"`
	ParentAccounts *Taxonomy         `json:"parent_accounts"`
	PaymentMethods []string          `json:"payment_methods"`
	DefaultPerson  string            `json:"default_person"`
	Metadata       Metadata          `json:"metadata"`
}

// Store owns the in-memory ledger and its flat-file persistence. A single
// instance serializes its own reads and writes; two processes sharing one
// data file get last-writer-wins and nothing stronger.
type Store struct {
	mu            sync.Mutex
	path          string
	transactions  []model.Transaction
	taxonomy      *Taxonomy
	roommates     []string
	methods       []string
	defaultPerson string
	meta          Metadata

	now func() time.Time
}

// Open returns a Store backed by the data file at path. A missing or
// unreadable file is not an error: the store starts from the built-in
// defaults and the problem is logged.
func Open(path string) *Store {
	s := &Store{path: path, now: time.Now}
	s.load()
	return s
}

func (s *Store) load() {
	s.transactions = nil
	s.taxonomy = DefaultTaxonomy()
	s.roommates = nil
	s.methods = DefaultPaymentMethods()
	s.defaultPerson = ""
	s.meta = Metadata{
		Version:     schemaVersion,
		CreatedAt:   s.now().Format(model.TimestampFormat),
		LastUpdated: s.now().Format(model.TimestampFormat),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ledger: reading %s: %v (starting from defaults)", s.path, err)
		}
		return
	}

	var file loadSchema
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("ledger: parsing %s: %v (starting from defaults)", s.path, err)
		return
	}

	// Malformed entries are skipped; the rest of the file still loads.
	for i, raw := range file.Transactions {
		var t model.Transaction
		if err := json.Unmarshal(raw, &t); err != nil {
			log.Printf("ledger: skipping transaction %d in %s: %v", i, s.path, err)
			continue
		}
		s.transactions = append(s.transactions, t)
	}
	s.roommates = file.Roommates
	if file.ParentAccounts != nil && len(file.ParentAccounts.Parents()) > 0 {
		s.taxonomy = file.ParentAccounts
	}
	if len(file.PaymentMethods) > 0 {
		s.methods = file.PaymentMethods
	}
	s.defaultPerson = file.DefaultPerson
	if file.Metadata.Version != "" {
		s.meta = file.Metadata
	}
}

// Save persists the full ledger state. Unlike load failures, write failures
// are the caller's problem. The file is replaced via rename so a crash
// mid-write cannot truncate it.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.meta.LastUpdated = s.now().Format(model.TimestampFormat)
	if s.meta.Version == "" {
		s.meta.Version = schemaVersion
	}

	file := fileSchema{
		Transactions:   s.transactions,
		Roommates:      s.roommates,
		ParentAccounts: s.taxonomy,
		PaymentMethods: s.methods,
		DefaultPerson:  s.defaultPerson,
		Metadata:       s.meta,
	}
	if file.Transactions == nil {
		file.Transactions = []model.Transaction{}
	}
	if file.Roommates == nil {
		file.Roommates = []string{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}

// Add validates and appends a transaction, then persists. Missing fields are
// backfilled first: payer from the default person, payment method from the
// first configured method, beneficiaries from the payer. Returns ErrDuplicate
// or a validation error on rejection; the ledger is unchanged on failure.
func (s *Store) Add(t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.WhoPaid == "" && s.defaultPerson != "" {
		t.WhoPaid = s.defaultPerson
	}
	if t.MethodOfPayment == "" && len(s.methods) > 0 {
		t.MethodOfPayment = s.methods[0]
	}
	if t.WhoWillUse == "" && t.WhoPaid != "" {
		t.WhoWillUse = t.WhoPaid
	}
	t.Init(s.now())

	if err := s.validate(*t); err != nil {
		return err
	}
	if s.isDuplicate(*t) {
		return ErrDuplicate
	}

	s.transactions = append(s.transactions, *t)
	return s.save()
}

// validate enforces the ledger entry rule: date, description, payer,
// beneficiaries, and payment method must be non-empty, and the account must
// be empty, a "Select" placeholder, or a known leaf or parent category.
func (s *Store) validate(t model.Transaction) error {
	switch {
	case t.Date == "":
		return errors.New("date is required")
	case t.Description == "":
		return errors.New("description is required")
	case t.WhoPaid == "":
		return errors.New("who paid is required")
	case t.WhoWillUse == "":
		return errors.New("who will use is required")
	case t.MethodOfPayment == "":
		return errors.New("method of payment is required")
	}

	if t.Account != "" && t.Account != "Select" && t.Account != "Select Account" &&
		!s.taxonomy.HasSubAccount(t.Account) && !s.taxonomy.HasParent(t.Account) {
		return fmt.Errorf("unknown account %q", t.Account)
	}
	return nil
}

func (s *Store) isDuplicate(t model.Transaction) bool {
	for _, existing := range s.transactions {
		if existing.Date == t.Date &&
			strings.EqualFold(existing.Description, t.Description) &&
			existing.Amount.Sub(t.Amount).Abs().LessThan(dupTolerance) {
			return true
		}
	}
	return false
}

// Update carries the optional field changes for one transaction. Nil fields
// are left untouched.
type Update struct {
	Date            *string
	Description     *string
	Amount          *decimal.Decimal
	Account         *string
	WhoPaid         *string
	WhoWillUse      *string
	MethodOfPayment *string
	Type            *model.Type
	ParentAccount   *string
}

func (u Update) applyTo(t *model.Transaction) {
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Account != nil {
		t.Account = *u.Account
	}
	if u.WhoPaid != nil {
		t.WhoPaid = *u.WhoPaid
	}
	if u.WhoWillUse != nil {
		t.WhoWillUse = *u.WhoWillUse
	}
	if u.MethodOfPayment != nil {
		t.MethodOfPayment = *u.MethodOfPayment
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.ParentAccount != nil {
		t.ParentAccount = *u.ParentAccount
	}
}

// UpdateTransaction applies a partial update to the transaction with the
// given id, restamping updated_at and persisting. The changes are validated
// against a copy first, so a rejected update leaves the stored record
// exactly as it was.
func (s *Store) UpdateTransaction(id string, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		proposed := s.transactions[i]
		u.applyTo(&proposed)
		proposed.Touch(s.now())

		if err := s.validate(proposed); err != nil {
			return err
		}
		s.transactions[i] = proposed
		return s.save()
	}
	return ErrNotFound
}

// Delete removes a transaction by id and persists. Deleting an id that does
// not exist is not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	return s.save()
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// Transactions returns a copy of the full transaction list.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.transactions...)
}

// Filter returns the transactions matching f.
func (s *Store) Filter(f query.Filter) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Apply(s.transactions, f)
}

// Count returns the number of transactions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// Taxonomy returns a deep copy of the account hierarchy.
func (s *Store) Taxonomy() *Taxonomy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxonomy.Clone()
}

// AddParentAccount adds a parent category. Reports whether the taxonomy
// changed; persists only when it did.
func (s *Store) AddParentAccount(name string) (bool, error) {
	return s.mutate(func() bool { return s.taxonomy.AddParent(name) })
}

// RemoveParentAccount removes a parent category and its sub-accounts.
func (s *Store) RemoveParentAccount(name string) (bool, error) {
	return s.mutate(func() bool { return s.taxonomy.RemoveParent(name) })
}

// AddSubAccount adds a leaf under an existing parent category.
func (s *Store) AddSubAccount(parent, leaf string) (bool, error) {
	return s.mutate(func() bool { return s.taxonomy.AddSubAccount(parent, leaf) })
}

// RemoveSubAccount removes a leaf from a parent category.
func (s *Store) RemoveSubAccount(parent, leaf string) (bool, error) {
	return s.mutate(func() bool { return s.taxonomy.RemoveSubAccount(parent, leaf) })
}

// Roommates returns the roommate list.
func (s *Store) Roommates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.roommates...)
}

// AddRoommate inserts a roommate by name. Reports whether the set changed.
func (s *Store) AddRoommate(name string) (bool, error) {
	return s.mutate(func() bool {
		if contains(s.roommates, name) {
			return false
		}
		s.roommates = append(s.roommates, name)
		return true
	})
}

// RemoveRoommate removes a roommate by name.
func (s *Store) RemoveRoommate(name string) (bool, error) {
	return s.mutate(func() bool {
		var removed bool
		s.roommates, removed = remove(s.roommates, name)
		return removed
	})
}

// PaymentMethods returns the payment method list.
func (s *Store) PaymentMethods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.methods...)
}

// AddPaymentMethod inserts a payment method. Reports whether the set changed.
func (s *Store) AddPaymentMethod(name string) (bool, error) {
	return s.mutate(func() bool {
		if contains(s.methods, name) {
			return false
		}
		s.methods = append(s.methods, name)
		return true
	})
}

// RemovePaymentMethod removes a payment method by name.
func (s *Store) RemovePaymentMethod(name string) (bool, error) {
	return s.mutate(func() bool {
		var removed bool
		s.methods, removed = remove(s.methods, name)
		return removed
	})
}

// DefaultPerson returns the designated primary ledger owner.
func (s *Store) DefaultPerson() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultPerson
}

// SetDefaultPerson sets the primary ledger owner and persists.
func (s *Store) SetDefaultPerson(person string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultPerson = person
	return s.save()
}

// Metadata returns the bookkeeping block.
func (s *Store) Metadata() Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Dir returns the directory holding the data file.
func (s *Store) Dir() string { return filepath.Dir(s.path) }

// FileSize returns the data file size in bytes, or 0 if it does not exist.
func (s *Store) FileSize() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// mutate runs a set operation under the lock and persists when it changed
// anything.
func (s *Store) mutate(op func() bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !op() {
		return false, nil
	}
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

func remove(set []string, name string) ([]string, bool) {
	for i, s := range set {
		if s == name {
			return append(set[:i], set[i+1:]...), true
		}
	}
	return set, false
}
