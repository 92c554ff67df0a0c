package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/anacrolix/filesource/segments"
)

// A byte range given as "start-end", end exclusive.
type byteRange segments.Extent

func (me *byteRange) UnmarshalText(b []byte) error {
	startStr, endStr, ok := strings.Cut(string(b), "-")
	if !ok {
		return fmt.Errorf("expected start-end, got %q", b)
	}
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing start: %w", err)
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing end: %w", err)
	}
	if start < 0 || end < start {
		return fmt.Errorf("bad range %v-%v", start, end)
	}
	*me = byteRange(segments.ExtentFromBounds(start, end))
	return nil
}

func rangeSet(rs []byteRange) (ret segments.RangeSet) {
	for _, r := range rs {
		ret.Add(segments.Extent(r))
	}
	return
}

// A size like "64KiB" or "65536".
type byteSize int64

func (me *byteSize) UnmarshalText(b []byte) error {
	u, err := humanize.ParseBytes(string(b))
	if err != nil {
		return err
	}
	if u == 0 {
		return fmt.Errorf("size must be positive")
	}
	*me = byteSize(u)
	return nil
}

func (me *byteSize) orDefault() int64 {
	if me == nil {
		return segments.DefaultBlockSize
	}
	return int64(*me)
}
