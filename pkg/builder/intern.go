package builder

// Table interns strings into a dense, append-only table of uint32 ids, so
// the compiled archives can reference repeated text (expressions, readings,
// definition glosses, search keys) by a 4-byte index instead of storing the
// bytes inline every time they occur.
type Table struct {
	ids     map[string]uint32
	Strings []string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{ids: make(map[string]uint32)}
}

// Intern returns s's id, assigning it the next free id on first occurrence.
func (t *Table) Intern(s string) uint32 {
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := uint32(len(t.Strings))
	t.ids[s] = id
	t.Strings = append(t.Strings, s)
	return id
}

// Lookup returns s's id without interning it.
func (t *Table) Lookup(s string) (uint32, bool) {
	id, ok := t.ids[s]
	return id, ok
}
