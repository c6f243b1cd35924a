package source

import (
	"slices"
)

// StringID is a handle into an Interner. The zero value means "no string".
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and literal text so tokens carry a
// uint32 handle instead of a Go string.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // слот 0 зарезервирован под NoStringID
		index: map[string]StringID{"": 0},
	}
}

// Intern stores s (once) and returns its ID.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	// Собственная копия, чтобы не удерживать исходный буфер файла.
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// InternBytes interns the byte content as a string.
func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

// Lookup returns the string for id, with ok=false for unknown IDs.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics on an unknown ID. Use when the ID came from this
// interner's own Intern call.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: unknown string ID")
	}
	return s
}

// Has reports whether id is valid for this interner.
func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.byID)
}

// Len counts stored strings, the NoStringID slot included.
func (in *Interner) Len() int {
	return len(in.byID)
}

// Snapshot returns a copy of all stored strings, indexable by StringID.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.byID)
}
