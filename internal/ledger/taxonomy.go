package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Taxonomy is the two-level account hierarchy: parent category name mapped to
// an ordered list of sub-account (leaf) names. Insertion order of parents and
// leaves is preserved for display and survives a JSON round trip.
//
// A leaf name is not prevented from appearing under two parents; lookups
// treat it as valid if any parent holds it.
type Taxonomy struct {
	order  []string
	leaves map[string][]string
}

// NewTaxonomy returns an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{leaves: make(map[string][]string)}
}

// Parents returns the parent names in insertion order.
func (x *Taxonomy) Parents() []string {
	return append([]string(nil), x.order...)
}

// HasParent reports whether name is a parent category.
func (x *Taxonomy) HasParent(name string) bool {
	_, ok := x.leaves[name]
	return ok
}

// SubAccounts returns the leaves under parent, in insertion order.
func (x *Taxonomy) SubAccounts(parent string) []string {
	return append([]string(nil), x.leaves[parent]...)
}

// AllSubAccounts returns every leaf across all parents, parent order first.
func (x *Taxonomy) AllSubAccounts() []string {
	var all []string
	for _, p := range x.order {
		all = append(all, x.leaves[p]...)
	}
	return all
}

// HasSubAccount reports whether name is a leaf under any parent.
func (x *Taxonomy) HasSubAccount(name string) bool {
	for _, leaves := range x.leaves {
		for _, l := range leaves {
			if l == name {
				return true
			}
		}
	}
	return false
}

// AddParent inserts an empty parent category. Returns false if it exists.
func (x *Taxonomy) AddParent(name string) bool {
	if x.HasParent(name) {
		return false
	}
	x.order = append(x.order, name)
	x.leaves[name] = nil
	return true
}

// RemoveParent deletes a parent and all its leaves. Returns false if absent.
func (x *Taxonomy) RemoveParent(name string) bool {
	if !x.HasParent(name) {
		return false
	}
	delete(x.leaves, name)
	for i, p := range x.order {
		if p == name {
			x.order = append(x.order[:i], x.order[i+1:]...)
			break
		}
	}
	return true
}

// AddSubAccount appends a leaf under parent. Returns false if the parent is
// unknown or the leaf already exists under it.
func (x *Taxonomy) AddSubAccount(parent, leaf string) bool {
	leaves, ok := x.leaves[parent]
	if !ok {
		return false
	}
	for _, l := range leaves {
		if l == leaf {
			return false
		}
	}
	x.leaves[parent] = append(leaves, leaf)
	return true
}

// RemoveSubAccount deletes a leaf from parent. Returns false if absent.
func (x *Taxonomy) RemoveSubAccount(parent, leaf string) bool {
	leaves, ok := x.leaves[parent]
	if !ok {
		return false
	}
	for i, l := range leaves {
		if l == leaf {
			x.leaves[parent] = append(leaves[:i], leaves[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (x *Taxonomy) Clone() *Taxonomy {
	c := NewTaxonomy()
	c.order = append([]string(nil), x.order...)
	for p, leaves := range x.leaves {
		c.leaves[p] = append([]string(nil), leaves...)
	}
	return c
}

// MarshalJSON writes the taxonomy as a JSON object with parents in insertion
// order, which a plain map would not preserve.
func (x *Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range x.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		leaves := x.leaves[p]
		if leaves == nil {
			leaves = []string{}
		}
		val, err := json.Marshal(leaves)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the document.
func (x *Taxonomy) UnmarshalJSON(data []byte) error {
	x.order = nil
	x.leaves = make(map[string][]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading taxonomy: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("taxonomy: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading taxonomy key: %w", err)
		}
		parent, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("taxonomy: non-string key %v", keyTok)
		}
		var leaves []string
		if err := dec.Decode(&leaves); err != nil {
			return fmt.Errorf("reading sub-accounts for %q: %w", parent, err)
		}
		if !x.HasParent(parent) {
			x.order = append(x.order, parent)
		}
		x.leaves[parent] = leaves
	}
	return nil
}
