//go:build !unix

package storage

import (
	"errors"
)

// Without device and inode numbers containment can't be proven, so every walk fails closed.
func statIdentity(path string) (fileIdentity, error) {
	return fileIdentity{}, errors.ErrUnsupported
}
