package diag

import "strings"

// Path is an ordered sequence of descriptor keys.
type Path []string

// Join returns a new Path with keys appended. The receiver is never modified.
func (p Path) Join(keys ...string) Path {
	out := make(Path, 0, len(p)+len(keys))
	out = append(out, p...)
	return append(out, keys...)
}

// String renders the dotted form used in human-readable messages.
func (p Path) String() string { return strings.Join(p, ".") }

// Pointer renders the path as an RFC 6901 JSON Pointer. The empty path is
// the whole document, "".
func (p Path) Pointer() string {
	b := &strings.Builder{}
	for _, k := range p {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1'
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Equal reports whether both paths hold the same keys in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}
