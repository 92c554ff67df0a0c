package segments

import (
	"iter"
	"strings"

	"github.com/google/btree"
)

const rangeSetDegree = 8

func extentStartLess(a, b Extent) bool {
	return a.Start < b.Start
}

// An ordered set of non-overlapping, non-adjacent extents. The zero value is an empty set. Not safe
// for concurrent mutation.
type RangeSet struct {
	tree *btree.BTreeG[Extent]
}

func NewRangeSet(extents ...Extent) (ret RangeSet) {
	for _, e := range extents {
		ret.Add(e)
	}
	return
}

func (me *RangeSet) init() {
	if me.tree == nil {
		me.tree = btree.NewG(rangeSetDegree, extentStartLess)
	}
}

// Unions e into the set. Extents that overlap or touch e are merged with it. Empty extents are
// ignored.
func (me *RangeSet) Add(e Extent) {
	if e.IsEmpty() {
		return
	}
	me.init()
	start, end := e.Start, e.End()
	var absorbed []Extent
	// The nearest extent starting at or before e might reach into it.
	me.tree.DescendLessOrEqual(e, func(item Extent) bool {
		if item.End() >= start {
			absorbed = append(absorbed, item)
		}
		return false
	})
	me.tree.AscendGreaterOrEqual(Extent{Start: start}, func(item Extent) bool {
		if item.Start > end {
			return false
		}
		absorbed = append(absorbed, item)
		return true
	})
	for _, item := range absorbed {
		me.tree.Delete(item)
		start = min(start, item.Start)
		end = max(end, item.End())
	}
	me.tree.ReplaceOrInsert(ExtentFromBounds(start, end))
}

func (me RangeSet) Len() int {
	if me.tree == nil {
		return 0
	}
	return me.tree.Len()
}

func (me RangeSet) IsEmpty() bool {
	return me.Len() == 0
}

// Yields the extents in ascending order.
func (me RangeSet) Iter() iter.Seq[Extent] {
	return func(yield func(Extent) bool) {
		if me.tree == nil {
			return
		}
		me.tree.Ascend(func(item Extent) bool {
			return yield(item)
		})
	}
}

func (me RangeSet) Extents() (ret []Extent) {
	for e := range me.Iter() {
		ret = append(ret, e)
	}
	return
}

// Total number of bytes covered.
func (me RangeSet) Bytes() (ret Length) {
	for e := range me.Iter() {
		ret += e.Length
	}
	return
}

// Whether every byte of e is in the set. Empty extents are always covered.
func (me RangeSet) Covers(e Extent) (ret bool) {
	if e.IsEmpty() {
		return true
	}
	if me.tree == nil {
		return false
	}
	me.tree.DescendLessOrEqual(e, func(item Extent) bool {
		ret = item.Contains(e)
		return false
	})
	return
}

// Whether every extent of other is covered by the set.
func (me RangeSet) CoversSet(other RangeSet) bool {
	for e := range other.Iter() {
		if !me.Covers(e) {
			return false
		}
	}
	return true
}

// Returns a set that shares nothing with me.
func (me RangeSet) Copy() RangeSet {
	if me.tree == nil {
		return RangeSet{}
	}
	return RangeSet{tree: me.tree.Clone()}
}

func (me RangeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for e := range me.Iter() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(e.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
