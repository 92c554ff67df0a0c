package filesource

import (
	"strings"
)

// Resource specs this backend claims start with this.
const ResourcePrefix = "file://"

// Splits a resource spec into the directory, keeping its trailing slash, and the file name. ok is
// false if the spec doesn't belong to this backend. Either part may be empty.
func SplitResource(spec string) (dir, name string, ok bool) {
	rest, ok := strings.CutPrefix(spec, ResourcePrefix)
	if !ok {
		return
	}
	i := strings.LastIndexByte(rest, '/')
	return rest[:i+1], rest[i+1:], true
}
