package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/anacrolix/log"
)

// Upper bound on parent steps taken while looking for the sandbox root.
const MaxPathDepth = 1000

// Symlinks followed from a file name before giving up, as the kernel does with ELOOP.
const maxSymlinkHops = 40

const parentSegment = string(filepath.Separator) + ".."

// Uniquely identifies a directory or file on the local machine.
type fileIdentity struct {
	Dev uint64
	Ino uint64
}

// Decides whether directories lie below a sandbox root by comparing filesystem identities, never
// path strings. Immutable and safe for concurrent use.
type PathGuard struct {
	root     string
	top      string
	maxDepth int
	logger   log.Logger
}

func NewPathGuard(root string, maxDepth int, logger log.Logger) PathGuard {
	return PathGuard{
		root:     root,
		top:      string(filepath.Separator),
		maxDepth: maxDepth,
		logger:   logger,
	}
}

func (me PathGuard) Root() string {
	return me.root
}

// Reports whether dir is strictly below the root. dir itself being the root, lying above it, or
// escaping it through a symlink all report false, as does any stat failure or a walk longer than
// the depth limit.
func (me PathGuard) Contained(dir string) (ret bool) {
	ret = me.walk(dir)
	me.logger.Levelf(log.Debug, "contained: root=%q dir=%q: %v", me.root, dir, ret)
	return
}

// Like Contained, but for the file dir/name: if name is a symlink, the directory of every link
// target along the chain must be contained too. A name that doesn't exist or isn't a symlink
// leaves the decision to dir.
func (me PathGuard) ContainedFile(dir, name string) bool {
	for range maxSymlinkHops {
		if !me.Contained(dir) {
			return false
		}
		link := JoinDirFile(dir, name)
		target, err := os.Readlink(link)
		if err != nil {
			return true
		}
		me.logger.Levelf(log.Debug, "following %q -> %q", link, target)
		if !filepath.IsAbs(target) {
			target = JoinDirFile(dir, target)
		}
		i := strings.LastIndexByte(target, filepath.Separator)
		dir, name = target[:i+1], target[i+1:]
	}
	return false
}

func (me PathGuard) walk(dir string) bool {
	rootId, err := statIdentity(me.root)
	if err != nil {
		return false
	}
	topId, err := statIdentity(me.top)
	if err != nil {
		return false
	}
	// Segments are appended rather than cleaned away, so each step is resolved by the kernel and
	// symlinks are followed where they actually lead.
	walk := dir
	if walk == "" {
		walk = "."
	} else if walk = strings.TrimRight(walk, string(filepath.Separator)); walk == "" {
		walk = me.top
	}
	for step := 0; step < me.maxDepth; step++ {
		id, err := statIdentity(walk)
		if err != nil {
			return false
		}
		if id == rootId {
			return step > 0
		}
		if id == topId {
			return false
		}
		walk += parentSegment
	}
	return false
}

// Reports whether root strictly contains dir, with the default depth limit.
func IsContained(root, dir string) bool {
	return NewPathGuard(root, MaxPathDepth, log.Default).Contained(dir)
}

// Reports whether dir/name exists and, after following symlinks, is a regular file.
func IsRegularFile(dir, name string) bool {
	fi, err := os.Stat(JoinDirFile(dir, name))
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// Joins without cleaning, so ".." and symlinks keep their on-disk meaning.
func JoinDirFile(dir, name string) string {
	if dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}
