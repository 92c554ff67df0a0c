//go:build unix

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anacrolix/log"
	"github.com/go-quicktest/qt"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, elem ...string) string {
	p := filepath.Join(elem...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func TestContainedBelowRoot(t *testing.T) {
	root := t.TempDir()
	qt.Check(t, qt.IsTrue(IsContained(root, mkdirs(t, root, "a"))))
	qt.Check(t, qt.IsTrue(IsContained(root, mkdirs(t, root, "a", "b", "c"))))
	// Trailing separators and dot segments don't matter: identities are compared.
	qt.Check(t, qt.IsTrue(IsContained(root, filepath.Join(root, "a")+"/")))
	qt.Check(t, qt.IsTrue(IsContained(root, root+"/a/b/../b/./c")))
}

func TestNotContainedAtOrAboveRoot(t *testing.T) {
	parent := t.TempDir()
	root := mkdirs(t, parent, "root")
	qt.Check(t, qt.IsFalse(IsContained(root, root)))
	qt.Check(t, qt.IsFalse(IsContained(root, mkdirs(t, root, "a")+"/..")))
	qt.Check(t, qt.IsFalse(IsContained(root, parent)))
	qt.Check(t, qt.IsFalse(IsContained(root, "/")))
	qt.Check(t, qt.IsFalse(IsContained(root, mkdirs(t, parent, "sibling"))))
	qt.Check(t, qt.IsFalse(IsContained(root, root+"/../sibling")))
}

func TestNotContainedThroughSymlink(t *testing.T) {
	parent := t.TempDir()
	root := mkdirs(t, parent, "root")
	outside := mkdirs(t, parent, "outside", "deep")
	link := filepath.Join(root, "escape")
	require.NoError(t, os.Symlink(outside, link))
	qt.Check(t, qt.IsFalse(IsContained(root, link)))
	qt.Check(t, qt.IsFalse(IsContained(root, link+"/")))
	// A symlink that stays inside the sandbox is fine.
	inside := mkdirs(t, root, "real", "dir")
	require.NoError(t, os.Symlink(inside, filepath.Join(root, "alias")))
	qt.Check(t, qt.IsTrue(IsContained(root, filepath.Join(root, "alias"))))
}

func TestContainedFileFollowsSymlinks(t *testing.T) {
	parent := t.TempDir()
	root := mkdirs(t, parent, "root")
	data := mkdirs(t, root, "data")
	outside := mkdirs(t, parent, "outside")
	for _, f := range []string{filepath.Join(data, "plain"), filepath.Join(outside, "secret")} {
		require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	}
	symlink := func(target, name string) {
		require.NoError(t, os.Symlink(target, filepath.Join(data, name)))
	}
	symlink("../../outside/secret", "leak")
	symlink(filepath.Join(outside, "secret"), "abs-leak")
	symlink("plain", "alias")
	symlink(filepath.Join(data, "plain"), "abs-alias")
	// Each link is inside, but the chain ends outside.
	symlink("leak", "hop")
	symlink("loop-b", "loop-a")
	symlink("loop-a", "loop-b")
	guard := NewPathGuard(root, MaxPathDepth, log.Default)
	dir := data + "/"
	for name, want := range map[string]bool{
		"plain":     true,
		"missing":   true,
		"alias":     true,
		"abs-alias": true,
		"leak":      false,
		"abs-leak":  false,
		"hop":       false,
		"loop-a":    false,
	} {
		qt.Check(t, qt.Equals(guard.ContainedFile(dir, name), want), qt.Commentf("%v", name))
	}
	// The directory still has to be contained when the name isn't a link.
	qt.Check(t, qt.IsFalse(guard.ContainedFile(outside, "secret")))
}

func TestContainedFailsClosed(t *testing.T) {
	root := t.TempDir()
	qt.Check(t, qt.IsFalse(IsContained(root, filepath.Join(root, "missing"))))
	qt.Check(t, qt.IsFalse(IsContained(filepath.Join(root, "missing"), root)))
	f := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	// Walking up from a file fails: "file/.." can't be resolved.
	qt.Check(t, qt.IsFalse(IsContained(root, f)))
}

func TestContainedDepthLimit(t *testing.T) {
	root := t.TempDir()
	dir := mkdirs(t, root, "1", "2", "3", "4")
	qt.Check(t, qt.IsFalse(NewPathGuard(root, 4, log.Default).Contained(dir)))
	qt.Check(t, qt.IsTrue(NewPathGuard(root, 5, log.Default).Contained(dir)))
	qt.Check(t, qt.IsFalse(NewPathGuard(root, 0, log.Default).Contained(dir)))
}

func TestContainedFilesystemRoot(t *testing.T) {
	dir := t.TempDir()
	qt.Check(t, qt.IsTrue(IsContained("/", dir)))
	qt.Check(t, qt.IsFalse(IsContained("/", "/")))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "f"), filepath.Join(dir, "lf")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nope"), filepath.Join(dir, "dangling")))
	qt.Check(t, qt.IsTrue(IsRegularFile(dir, "f")))
	qt.Check(t, qt.IsTrue(IsRegularFile(dir+"/", "f")))
	qt.Check(t, qt.IsTrue(IsRegularFile(dir, "lf")))
	qt.Check(t, qt.IsFalse(IsRegularFile(dir, "d")))
	qt.Check(t, qt.IsFalse(IsRegularFile(dir, "dangling")))
	qt.Check(t, qt.IsFalse(IsRegularFile(dir, "missing")))
	qt.Check(t, qt.IsFalse(IsRegularFile("/dev", "null")))
}

func TestJoinDirFile(t *testing.T) {
	qt.Check(t, qt.Equals(JoinDirFile("a/", "b"), "a/b"))
	qt.Check(t, qt.Equals(JoinDirFile("a", "b"), "a/b"))
	qt.Check(t, qt.Equals(JoinDirFile("", "b"), "b"))
	qt.Check(t, qt.Equals(JoinDirFile("a/../c", "b"), "a/../c/b"))
}
