// Package refmodel holds the fixed statistical reference model used by the
// classifier: per amino-acid-type Gaussian parameters of side-chain chemical
// shifts. The table is validated once at construction and never mutated.
package refmodel

import "fmt"

// Table is an immutable set of reference entries plus the derived list of
// distinct amino-acid types. Construct via NewTable; the zero value is not
// usable.
type Table struct {
	entries []Entry
	types   []string
}

// NewTable validates the given entries and builds a table over them.
// Validation is fail-fast: the first non-positive sigma or duplicate
// (amino acid, position) pair aborts construction.
func NewTable(entries []Entry) (*Table, error) {
	seen := make(map[string]struct{}, len(entries))
	// порядок типов фиксируем по первому вхождению, он же порядок tie-break
	types := make([]string, 0, 8)
	typeSeen := make(map[string]struct{}, 8)
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		key := e.Label()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateEntry, key)
		}
		seen[key] = struct{}{}
		if _, ok := typeSeen[e.AminoAcid]; !ok {
			typeSeen[e.AminoAcid] = struct{}{}
			types = append(types, e.AminoAcid)
		}
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp, types: types}, nil
}

// Entries returns the full reference table in definition order.
// Callers must treat the returned slice as read-only.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Types returns every distinct amino-acid label exactly once, in first-seen
// order of the entry list. This order is deterministic and is the tie-break
// order for equal-probability ranking.
func (t *Table) Types() []string {
	return t.types
}

// Len returns the number of reference entries.
func (t *Table) Len() int {
	return len(t.entries)
}
