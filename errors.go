package filesource

import (
	"errors"
	"io/fs"
	"syscall"
)

var (
	// Returned by NewSource when the configuration names no root. The source can't be used.
	ErrRootNotSpecified = errors.New("root not specified")
	ErrClosed           = errors.New("source closed")
)

// Returns the OS error code carried by err. Gate failures carry EPERM or ENOENT, I/O failures
// whatever the OS reported.
func Errno(err error) (ret syscall.Errno, ok bool) {
	ok = errors.As(err, &ret)
	return
}

// When both gates fail, not-found wins, so a caller can't learn which paths outside the sandbox
// exist.
func gateErrno(contained, regular bool) syscall.Errno {
	switch {
	case !regular:
		return syscall.ENOENT
	case !contained:
		return syscall.EPERM
	default:
		return 0
	}
}

func gateError(spec string, errno syscall.Errno) error {
	return &fs.PathError{Op: "read", Path: spec, Err: errno}
}
