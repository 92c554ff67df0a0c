package segments

import (
	"math"

	"github.com/anacrolix/missinggo/v2/panicif"
)

// Block size used to batch small reads into larger ones.
const DefaultBlockSize = 1 << 16

// Expands each extent in desired to the smallest covering range whose bounds are multiples of
// blockSize, and merges the results. The returned set doesn't alias desired. A block that would
// extend past math.MaxInt64 is cut short there: no file can reach beyond it.
func Blockify(desired RangeSet, blockSize Length) (ret RangeSet) {
	panicif.LessThanOrEqual(blockSize, 0)
	for e := range desired.Iter() {
		ret.Add(ExtentFromBounds(floorBlock(e.Start, blockSize), ceilBlock(e.End(), blockSize)))
	}
	return
}

func floorBlock(off Int, blockSize Length) Int {
	return off / blockSize * blockSize
}

func ceilBlock(off Int, blockSize Length) Int {
	floor := floorBlock(off, blockSize)
	if floor == off {
		return off
	}
	if floor > math.MaxInt64-blockSize {
		return math.MaxInt64
	}
	return floor + blockSize
}

// Whether every extent in s starts and ends on a multiple of blockSize.
func IsBlockAligned(s RangeSet, blockSize Length) bool {
	for e := range s.Iter() {
		if e.Start%blockSize != 0 || e.End()%blockSize != 0 {
			return false
		}
	}
	return true
}
