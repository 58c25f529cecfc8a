package schema

import (
	"encoding/json"
	"fmt"
)

// Store is the untyped view of a loaded table.
type Store interface {
	Name() Name
	Len() int
	// Lookup returns the record with the given token. A miss is not an error.
	Lookup(token string) (Record, bool)
	// Records returns every record in file order.
	Records() []Record
}

// Table holds the records of one table indexed by token, keeping file order.
type Table[T Record] struct {
	name    Name
	records []T
	index   map[string]int
}

// NewTable indexes records. Two records with the same token yield
// ErrDuplicateToken.
func NewTable[T Record](records []T) (*Table[T], error) {
	var zero T
	t := &Table[T]{
		name:    zero.Table(),
		records: make([]T, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		token := r.GetToken()
		if first, ok := t.index[token]; ok {
			return nil, &Error{
				Kind:  ErrDuplicateToken,
				Table: t.name,
				Index: i,
				Token: token,
				Err:   fmt.Errorf("already used by element %d", first),
			}
		}
		t.index[token] = len(t.records)
		t.records = append(t.records, r)
	}
	return t, nil
}

// LoadTable reads a table file: a JSON array with one object per record.
func LoadTable[T Record](path string) (*Table[T], error) {
	var zero T
	name := zero.Table()

	var raw []json.RawMessage
	if err := LoadJSON(path, &raw); err != nil {
		return nil, locate(err, name, -1, "")
	}
	if raw == nil {
		return nil, &Error{Kind: ErrSchemaValidation, Table: name, Index: -1, Err: fmt.Errorf("%s: expected a JSON array, got null", path)}
	}

	records := make([]T, 0, len(raw))
	for i, elem := range raw {
		var m map[string]any
		if err := json.Unmarshal(elem, &m); err != nil {
			return nil, &Error{Kind: ErrSchemaValidation, Table: name, Index: i, Err: fmt.Errorf("expected a JSON object: %w", err)}
		}
		rec, err := FromDict[T](m)
		if err != nil {
			token, _ := m["token"].(string)
			return nil, locate(err, name, i, token)
		}
		records = append(records, rec)
	}
	return NewTable(records)
}

func (t *Table[T]) Name() Name { return t.name }

func (t *Table[T]) Len() int { return len(t.records) }

// Get returns the record with the given token.
func (t *Table[T]) Get(token string) (T, bool) {
	i, ok := t.index[token]
	if !ok {
		var zero T
		return zero, false
	}
	return t.records[i], true
}

// Has reports whether token is present.
func (t *Table[T]) Has(token string) bool {
	_, ok := t.index[token]
	return ok
}

// All returns the records in file order. The slice must not be modified.
func (t *Table[T]) All() []T { return t.records }

func (t *Table[T]) Lookup(token string) (Record, bool) {
	r, ok := t.Get(token)
	if !ok {
		return nil, false
	}
	return r, true
}

func (t *Table[T]) Records() []Record {
	out := make([]Record, len(t.records))
	for i, r := range t.records {
		out[i] = r
	}
	return out
}

// Save writes the table back to path in file order.
func (t *Table[T]) Save(path string) error {
	return SaveTable(path, t.records)
}

// As returns the typed table behind s.
func As[T Record](s Store) (*Table[T], error) {
	t, ok := s.(*Table[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("table %s is not a %s table", s.Name(), zero.Table())
	}
	return t, nil
}
