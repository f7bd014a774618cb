// Package lookup is the runtime half of the generated location table.
//
// The generator emits a Go file holding a sorted []Entry literal; that file
// wraps it in a Table with MustTable, which checks sortedness once at
// package initialisation. Location text itself is never compiled in: Init
// resolves each string ID through the host's resource loader.
package lookup

import (
	"errors"
	"fmt"
	"sort"
)

// Entry maps a global block ID to a string resource ID.
type Entry struct {
	Block    int32
	StringID uint32
}

// StringLoader resolves string resource IDs to text. It stands in for the
// platform resource handle (an HINSTANCE on Windows, an embedded catalogue
// elsewhere).
type StringLoader interface {
	LoadString(id uint32) (string, error)
}

// StringLoaderFunc adapts a function to StringLoader.
type StringLoaderFunc func(id uint32) (string, error)

// LoadString calls f(id).
func (f StringLoaderFunc) LoadString(id uint32) (string, error) { return f(id) }

// ErrNotSorted is returned by NewTable when entries are not strictly
// ascending by block ID.
var ErrNotSorted = errors.New("lookup: entries not strictly ascending by block")

// Table is an immutable block ID -> location name lookup.
type Table struct {
	entries []Entry
	strings []string // parallel to entries, filled by Init
}

// NewTable wraps entries, which must be strictly ascending by Block.
// The slice is used as-is and must not be modified afterwards.
func NewTable(entries []Entry) (*Table, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Block >= entries[i].Block {
			return nil, fmt.Errorf("%w: %d at index %d follows %d", ErrNotSorted, entries[i].Block, i, entries[i-1].Block)
		}
	}
	return &Table{entries: entries}, nil
}

// MustTable is like NewTable but panics on unsorted input. Generated code
// uses it in a package-level var so a bad table fails at startup.
func MustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Init loads the text for every entry. Strings shared by several blocks are
// loaded once.
func (t *Table) Init(loader StringLoader) error {
	strs := make([]string, len(t.entries))
	cache := make(map[uint32]string)
	for i, e := range t.entries {
		s, ok := cache[e.StringID]
		if !ok {
			var err error
			s, err = loader.LoadString(e.StringID)
			if err != nil {
				return fmt.Errorf("lookup: loading string %d for block %d: %w", e.StringID, e.Block, err)
			}
			cache[e.StringID] = s
		}
		strs[i] = s
	}
	t.strings = strs
	return nil
}

// search returns the index of block, or -1.
func (t *Table) search(block int32) int {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Block >= block
	})
	if i < len(t.entries) && t.entries[i].Block == block {
		return i
	}
	return -1
}

// StringID returns the string resource ID for a block.
func (t *Table) StringID(block int32) (uint32, bool) {
	i := t.search(block)
	if i < 0 {
		return 0, false
	}
	return t.entries[i].StringID, true
}

// FindLocationName returns the location name for a block. It reports false
// when the block has no name or Init has not run.
func (t *Table) FindLocationName(block int32) (string, bool) {
	i := t.search(block)
	if i < 0 || t.strings == nil {
		return "", false
	}
	return t.strings[i], true
}
