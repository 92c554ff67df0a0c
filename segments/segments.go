// Package segments provides byte extents and the ordered extent sets requests are expressed in.
package segments

import (
	"fmt"

	"github.com/anacrolix/missinggo/v2/panicif"
)

type Int = int64

type Length = Int

// A half-open byte range [Start, Start+Length).
type Extent struct {
	Start, Length Int
}

// Panics if end is before start.
func ExtentFromBounds(start, end Int) Extent {
	panicif.GreaterThan(start, end)
	return Extent{Start: start, Length: end - start}
}

func (e Extent) End() Int {
	return e.Start + e.Length
}

func (e Extent) IsEmpty() bool {
	return e.Length <= 0
}

// Whether other lies entirely within e.
func (e Extent) Contains(other Extent) bool {
	return other.Start >= e.Start && other.End() <= e.End()
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d)", e.Start, e.End())
}
