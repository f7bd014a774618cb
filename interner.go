package locgen

import (
	"fmt"
	"math"
	"sort"
)

// DefaultFirstStringID is the ID given to the lexically smallest location
// string. It keeps generated resources clear of hand-written ones in the
// application's resource.h.
const DefaultFirstStringID uint32 = 10000

// StringEntry is one interned string with its resource ID.
type StringEntry struct {
	ID   uint32
	Text string
}

// StringTable interns location strings into dense resource IDs.
//
// IDs are assigned in ascending byte order of the text, starting at first,
// so the assignment depends only on the set of distinct strings and never on
// the order they were read in.
type StringTable struct {
	first  uint32
	lookup []string          // (id - first) -> string
	index  map[string]uint32 // string -> id
}

// NewStringTable interns the distinct values of texts.
// Panics if the IDs would overflow uint32 (cannot happen with real data, but
// wrapping around would silently corrupt the resource table).
func NewStringTable(first uint32, texts []string) *StringTable {
	st := &StringTable{
		first: first,
		index: make(map[string]uint32, len(texts)),
	}
	for _, s := range texts {
		if _, ok := st.index[s]; !ok {
			st.index[s] = 0
			st.lookup = append(st.lookup, s)
		}
	}
	sort.Strings(st.lookup)

	if n := uint64(len(st.lookup)); n > 0 && uint64(first)+n-1 > math.MaxUint32 {
		panic(fmt.Sprintf("string table capacity exceeded: %d entries from %d", n, first))
	}
	for i, s := range st.lookup {
		st.index[s] = first + uint32(i)
	}
	return st
}

// ID returns the resource ID of an interned string.
func (st *StringTable) ID(s string) (uint32, bool) {
	id, ok := st.index[s]
	return id, ok
}

// Text returns the string for a resource ID.
func (st *StringTable) Text(id uint32) (string, bool) {
	if id < st.first || uint64(id-st.first) >= uint64(len(st.lookup)) {
		return "", false
	}
	return st.lookup[id-st.first], true
}

// Len returns the number of distinct strings.
func (st *StringTable) Len() int { return len(st.lookup) }

// Entries returns every string ordered by ascending ID.
func (st *StringTable) Entries() []StringEntry {
	out := make([]StringEntry, len(st.lookup))
	for i, s := range st.lookup {
		out[i] = StringEntry{ID: st.first + uint32(i), Text: s}
	}
	return out
}
