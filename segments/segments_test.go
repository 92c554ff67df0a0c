package segments

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/stretchr/testify/assert"
)

func TestExtentFromBounds(t *testing.T) {
	qt.Check(t, qt.Equals(ExtentFromBounds(3, 10), Extent{3, 7}))
	qt.Check(t, qt.Equals(ExtentFromBounds(5, 5).IsEmpty(), true))
	qt.Check(t, qt.PanicMatches(func() { ExtentFromBounds(10, 3) }, ".*"))
}

func TestRangeSetAddMerges(t *testing.T) {
	var s RangeSet
	s.Add(Extent{10, 10})
	s.Add(Extent{40, 5})
	s.Add(Extent{0, 0})
	assert.EqualValues(t, []Extent{{10, 10}, {40, 5}}, s.Extents())
	// Adjacent on the right.
	s.Add(Extent{20, 5})
	assert.EqualValues(t, []Extent{{10, 15}, {40, 5}}, s.Extents())
	// Bridges both.
	s.Add(Extent{24, 17})
	assert.EqualValues(t, []Extent{{10, 35}}, s.Extents())
	// Swallowed entirely.
	s.Add(Extent{12, 3})
	assert.EqualValues(t, []Extent{{10, 35}}, s.Extents())
	s.Add(Extent{0, 100})
	assert.EqualValues(t, []Extent{{0, 100}}, s.Extents())
	assert.EqualValues(t, 100, s.Bytes())
}

func TestRangeSetCovers(t *testing.T) {
	s := NewRangeSet(Extent{0, 10}, Extent{20, 10})
	qt.Check(t, qt.IsTrue(s.Covers(Extent{0, 10})))
	qt.Check(t, qt.IsTrue(s.Covers(Extent{22, 3})))
	qt.Check(t, qt.IsFalse(s.Covers(Extent{5, 10})))
	qt.Check(t, qt.IsFalse(s.Covers(Extent{30, 1})))
	qt.Check(t, qt.IsTrue(s.Covers(Extent{1000, 0})))
	qt.Check(t, qt.IsFalse(RangeSet{}.Covers(Extent{0, 1})))
}

func TestRangeSetCopyDoesntAlias(t *testing.T) {
	a := NewRangeSet(Extent{0, 10})
	b := a.Copy()
	b.Add(Extent{100, 10})
	qt.Check(t, qt.Equals(a.Len(), 1))
	qt.Check(t, qt.Equals(b.Len(), 2))
	qt.Check(t, qt.Equals(RangeSet{}.Copy().Len(), 0))
}

func TestRangeSetString(t *testing.T) {
	qt.Check(t, qt.Equals(NewRangeSet(Extent{0, 10}, Extent{20, 5}).String(), "{[0,10) [20,25)}"))
	qt.Check(t, qt.Equals(RangeSet{}.String(), "{}"))
}
