package storage

import (
	"errors"
	"io"
	"os"
	"syscall"
)

type classicFileIo struct{}

type classicFileReader struct {
	*os.File
	// Set when the last seek was past anything the filesystem can store.
	pastEnd bool
}

// Some filesystems refuse seeks beyond their maximum file size. There's nothing to read there, so
// that's reported as EOF rather than an error.
func (c *classicFileReader) seekTo(offset int64) (int64, error) {
	c.pastEnd = false
	ret, err := c.File.Seek(offset, io.SeekStart)
	if err != nil && offset >= 0 && errors.Is(err, syscall.EINVAL) {
		fi, statErr := c.File.Stat()
		if statErr == nil && offset >= fi.Size() {
			c.pastEnd = true
			return offset, nil
		}
	}
	return ret, err
}

func (c *classicFileReader) Read(p []byte) (int, error) {
	if c.pastEnd {
		return 0, io.EOF
	}
	return c.File.Read(p)
}

func (classicFileIo) openForRead(name string) (fileReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &classicFileReader{File: f}, nil
}
