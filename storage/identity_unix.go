//go:build unix

package storage

import (
	"golang.org/x/sys/unix"
)

// Stats path, following symlinks, and returns the device and inode it resolves to.
func statIdentity(path string) (ret fileIdentity, err error) {
	var st unix.Stat_t
	err = unix.Stat(path, &st)
	if err != nil {
		return
	}
	ret.Dev = uint64(st.Dev)
	ret.Ino = uint64(st.Ino)
	return
}
