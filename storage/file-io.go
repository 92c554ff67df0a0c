package storage

import (
	"fmt"
	"io"
)

type fileReader interface {
	// Positions the next Read at offset from the start of the file.
	seekTo(offset int64) (ret int64, err error)
	io.ReadCloser
}

type fileIo interface {
	openForRead(name string) (fileReader, error)
}

// Selects how block ranges are read from disk.
type IoMode int

const (
	// Seek and read through a file descriptor.
	IoModeClassic IoMode = iota
	// Map the file read-only and copy out of the mapping.
	IoModeMmap
)

func (me IoMode) fileIo() fileIo {
	switch me {
	case IoModeMmap:
		return mmapFileIo{}
	default:
		return classicFileIo{}
	}
}

func (me IoMode) String() string {
	switch me {
	case IoModeClassic:
		return "classic"
	case IoModeMmap:
		return "mmap"
	default:
		return fmt.Sprintf("IoMode(%d)", int(me))
	}
}

func ParseIoMode(s string) (ret IoMode, err error) {
	switch s {
	case "", "classic":
		ret = IoModeClassic
	case "mmap":
		ret = IoModeMmap
	default:
		err = fmt.Errorf("unknown io mode %q", s)
	}
	return
}

// Implements encoding.TextUnmarshaler for flag and config parsing.
func (me *IoMode) UnmarshalText(b []byte) (err error) {
	*me, err = ParseIoMode(string(b))
	return
}
