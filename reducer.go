package locgen

import (
	"fmt"

	roaring "github.com/RoaringBitmap/roaring"
)

// mappedBlock is the value side of a BlockMapping entry.
type mappedBlock struct {
	location string
	pos      Position
}

// BlockMapping associates global block IDs with location text. Each ID
// appears at most once. The key set is kept in a roaring bitmap so that
// iteration is always in ascending ID order.
type BlockMapping struct {
	keys   *roaring.Bitmap
	blocks map[int32]mappedBlock
}

func newBlockMapping(capacity int) *BlockMapping {
	return &BlockMapping{
		keys:   roaring.New(),
		blocks: make(map[int32]mappedBlock, capacity),
	}
}

// Reduce resolves every record to its global block ID and merges them into a
// single mapping. The first repeated ID aborts the reduction.
func Reduce(records []RawRecord, territories *Territories) (*BlockMapping, error) {
	m := newBlockMapping(len(records))
	for _, rec := range records {
		t, err := territories.resolve(rec.Route)
		if err != nil {
			return nil, &RecordError{Pos: rec.Pos, Route: rec.Route, Err: err}
		}
		id, err := GlobalBlockID(t.Code, rec.Block)
		if err != nil {
			return nil, &RecordError{Pos: rec.Pos, Route: rec.Route, Err: err}
		}
		if err := m.insert(id, rec.Location, rec.Pos); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *BlockMapping) insert(id int32, location string, pos Position) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrBlockIDOutOfRange, id)
	}
	if !m.keys.CheckedAdd(uint32(id)) {
		return &DuplicateBlockIDError{ID: id, First: m.blocks[id].pos, Second: pos}
	}
	m.blocks[id] = mappedBlock{location: location, pos: pos}
	return nil
}

// Len returns the number of global block IDs in the mapping.
func (m *BlockMapping) Len() int { return len(m.blocks) }

// Get returns the location text for a global block ID.
func (m *BlockMapping) Get(id int32) (string, bool) {
	b, ok := m.blocks[id]
	return b.location, ok
}

// Each calls fn for every entry in ascending ID order.
func (m *BlockMapping) Each(fn func(id int32, location string)) {
	it := m.keys.Iterator()
	for it.HasNext() {
		id := int32(it.Next())
		fn(id, m.blocks[id].location)
	}
}

// Locations returns every location text referenced by the mapping, with
// repeats. Order follows block ID and carries no meaning for interning.
func (m *BlockMapping) Locations() []string {
	out := make([]string, 0, len(m.blocks))
	m.Each(func(_ int32, location string) {
		out = append(out, location)
	})
	return out
}
