package model

// Table maps EventKey to EventRecord and remembers insertion order.
type Table struct {
	keys    []EventKey
	records map[EventKey]*EventRecord
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{records: make(map[EventKey]*EventRecord)}
}

// Put stores rec under its key. Replacing an existing key keeps the
// original position.
func (t *Table) Put(rec EventRecord) {
	if existing, ok := t.records[rec.Key]; ok {
		*existing = rec
		return
	}
	t.keys = append(t.keys, rec.Key)
	r := rec
	t.records[rec.Key] = &r
}

// Get returns the record stored under key.
func (t *Table) Get(key EventKey) (*EventRecord, bool) {
	r, ok := t.records[key]
	return r, ok
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []EventKey {
	out := make([]EventKey, len(t.keys))
	copy(out, t.keys)
	return out
}

// Records returns copies of all records in insertion order.
func (t *Table) Records() []EventRecord {
	out := make([]EventRecord, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.records[k].Clone())
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	for _, k := range t.keys {
		c.Put(t.records[k].Clone())
	}
	return c
}

// Equal reports whether both tables hold equal records in the same order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.keys) != len(o.keys) {
		return false
	}
	for i, k := range t.keys {
		if o.keys[i] != k {
			return false
		}
		if !t.records[k].Equal(*o.records[k]) {
			return false
		}
	}
	return true
}
