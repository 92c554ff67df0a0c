package filesource

import (
	"iter"
	"sort"

	"github.com/anacrolix/multiless"
	list "github.com/bahlo/generic-list-go"

	"github.com/anacrolix/filesource/segments"
)

// File data returned for one block. EOF is set when the file ended before the block did, so Data
// is shorter than the block.
type Chunk struct {
	Offset int64
	Data   []byte
	EOF    bool
}

func (c Chunk) Length() int {
	return len(c.Data)
}

func (c Chunk) Extent() segments.Extent {
	return segments.Extent{Start: c.Offset, Length: int64(len(c.Data))}
}

// The chunks produced by one request. Each new chunk goes to the front, so iteration order is the
// reverse of the order blocks were read and says nothing about offsets. The zero value is empty.
type Chunks struct {
	l *list.List[Chunk]
}

func (me *Chunks) prepend(c Chunk) {
	if me.l == nil {
		me.l = list.New[Chunk]()
	}
	me.l.PushFront(c)
}

func (me Chunks) Len() int {
	if me.l == nil {
		return 0
	}
	return me.l.Len()
}

// Yields chunks most recently read first.
func (me Chunks) Iter() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if me.l == nil {
			return
		}
		for e := me.l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Returns the chunks in ascending offset order.
func (me Chunks) Sorted() (ret []Chunk) {
	for c := range me.Iter() {
		ret = append(ret, c)
	}
	sort.Slice(ret, func(i, j int) bool {
		l, r := ret[i], ret[j]
		return multiless.New().Int64(l.Offset, r.Offset).Int(l.Length(), r.Length()).Less()
	})
	return
}

// Total data bytes held.
func (me Chunks) Bytes() (ret int64) {
	for c := range me.Iter() {
		ret += int64(c.Length())
	}
	return
}

// The byte ranges the chunks hold data for.
func (me Chunks) Coverage() (ret segments.RangeSet) {
	for c := range me.Iter() {
		ret.Add(c.Extent())
	}
	return
}

// Whether any chunk hit the end of the file.
func (me Chunks) EOF() bool {
	for c := range me.Iter() {
		if c.EOF {
			return true
		}
	}
	return false
}
