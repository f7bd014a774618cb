package locgen

import (
	"math/rand"
	"testing"

	"gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { check.TestingT(t) }

type StringTableSuite struct{}

var _ = check.Suite(&StringTableSuite{})

func (s *StringTableSuite) TestLexicalOrder(c *check.C) {
	st := NewStringTable(DefaultFirstStringID, []string{"Yard A", "Siding 1", "Yard A"})
	c.Assert(st.Len(), check.Equals, 2)

	siding, ok := st.ID("Siding 1")
	c.Assert(ok, check.Equals, true)
	yard, ok := st.ID("Yard A")
	c.Assert(ok, check.Equals, true)
	c.Assert(siding, check.Equals, uint32(10000))
	c.Assert(yard, check.Equals, uint32(10001))
}

func (s *StringTableSuite) TestDenseFromBase(c *check.C) {
	texts := []string{"b", "a", "d", "c", "a", "b", "e"}
	st := NewStringTable(500, texts)
	entries := st.Entries()
	c.Assert(entries, check.HasLen, 5)
	for i, e := range entries {
		c.Assert(e.ID, check.Equals, uint32(500+i))
		if i > 0 {
			c.Assert(entries[i-1].Text < e.Text, check.Equals, true)
		}
		text, ok := st.Text(e.ID)
		c.Assert(ok, check.Equals, true)
		c.Assert(text, check.Equals, e.Text)
	}
}

func (s *StringTableSuite) TestOrderIndependent(c *check.C) {
	texts := []string{"Yard A", "Siding 1", "Barstow", "barstow", "Ätna", "Yard A", `Quote "Q"`, ""}
	want := NewStringTable(DefaultFirstStringID, texts).Entries()

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), texts...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		c.Assert(NewStringTable(DefaultFirstStringID, shuffled).Entries(), check.DeepEquals, want)
	}
}

func (s *StringTableSuite) TestEmpty(c *check.C) {
	st := NewStringTable(DefaultFirstStringID, nil)
	c.Assert(st.Len(), check.Equals, 0)
	c.Assert(st.Entries(), check.HasLen, 0)
	_, ok := st.Text(DefaultFirstStringID)
	c.Assert(ok, check.Equals, false)
}

func (s *StringTableSuite) TestUnknown(c *check.C) {
	st := NewStringTable(10, []string{"a"})
	_, ok := st.ID("b")
	c.Assert(ok, check.Equals, false)
	_, ok = st.Text(9)
	c.Assert(ok, check.Equals, false)
	_, ok = st.Text(11)
	c.Assert(ok, check.Equals, false)
}

func (s *StringTableSuite) TestOverflowPanics(c *check.C) {
	c.Assert(func() { NewStringTable(^uint32(0), []string{"a", "b"}) }, check.PanicMatches, "string table capacity exceeded.*")
	// A single string at the top of the range still fits.
	st := NewStringTable(^uint32(0), []string{"a"})
	id, _ := st.ID("a")
	c.Assert(id, check.Equals, ^uint32(0))
}
