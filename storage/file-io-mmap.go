package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

type mmapFileIo struct{}

var _ fileIo = mmapFileIo{}

func (mmapFileIo) openForRead(name string) (_ fileReader, err error) {
	f, err := os.Open(name)
	if err != nil {
		return
	}
	// The mapping outlives the descriptor.
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return
	}
	if !fi.Mode().IsRegular() {
		err = &fs.PathError{Op: "mmap", Path: name, Err: fs.ErrInvalid}
		return
	}
	// Empty files can't be mapped.
	if fi.Size() == 0 {
		return &mmapFileHandle{}, nil
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		err = fmt.Errorf("mapping file: %w", err)
		return
	}
	return &mmapFileHandle{m: mm}, nil
}

type mmapFileHandle struct {
	m     mmap.MMap
	pos   int64
	close sync.Once
}

func (me *mmapFileHandle) seekTo(offset int64) (int64, error) {
	if offset < 0 {
		return 0, fs.ErrInvalid
	}
	me.pos = offset
	return offset, nil
}

func (me *mmapFileHandle) Read(p []byte) (n int, err error) {
	if me.pos >= int64(len(me.m)) {
		err = io.EOF
		return
	}
	n = copy(p, me.m[me.pos:])
	me.pos += int64(n)
	return
}

func (me *mmapFileHandle) Close() (err error) {
	me.close.Do(func() {
		if me.m != nil {
			err = me.m.Unmap()
		}
	})
	return
}
