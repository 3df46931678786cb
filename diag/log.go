// Package diag records descriptor problems together with the key path where
// they were found.
//
// A Log is created with a base path. Parsers and verifiers descend into
// nested descriptors by creating a Sub log scoped to the child key and merging
// it back once the child is done, so an item recorded deep inside a package
// carries its fully qualified path without the child knowing its ancestors.
package diag

// Log is an append-only, ordered collection of Items sharing a base path.
// The zero value is an empty log rooted at the descriptor root.
type Log struct {
	base  Path
	items []Item
}

// New returns an empty log rooted at base.
func New(base ...string) *Log { return &Log{base: Path(base).Join()} }

// Base returns a copy of the log's base path.
func (l *Log) Base() Path { return l.base.Join() }

// Sub returns an empty log whose base is this log's base followed by keys.
// Items recorded in the sub log reach the parent only through Merge.
func (l *Log) Sub(keys ...string) *Log { return &Log{base: l.base.Join(keys...)} }

// Append records one item at keyPath relative to the log base.
func (l *Log) Append(keyPath Path, sev Severity, entry Entry) {
	l.items = append(l.items, Item{
		BasePath: l.base.Join(),
		KeyPath:  keyPath.Join(),
		Severity: sev,
		Entry:    entry,
	})
}

// Error records an error-severity item at keyPath.
func (l *Log) Error(entry Entry, keyPath ...string) { l.Append(keyPath, Error, entry) }

// Warn records a warning-severity item at keyPath.
func (l *Log) Warn(entry Entry, keyPath ...string) { l.Append(keyPath, Warning, entry) }

// AppendItem records a fully formed item verbatim.
func (l *Log) AppendItem(it Item) { l.items = append(l.items, it) }

// Merge appends every item of other in order. Recorded paths are kept as-is.
func (l *Log) Merge(other *Log) {
	if other == nil || other == l {
		return
	}
	l.items = append(l.items, other.items...)
}

// Len returns the number of recorded items. It doubles as a mark for CleanSince.
func (l *Log) Len() int { return len(l.items) }

// Items returns a copy of all recorded items.
func (l *Log) Items() Items {
	out := make(Items, len(l.items))
	copy(out, l.items)
	return out
}

// Pruning returns the items at or above sev. Error is the most severe level,
// so Pruning(Warning) returns everything and Pruning(Error) only errors.
func (l *Log) Pruning(sev Severity) Items {
	var out Items
	for _, it := range l.items {
		if it.Severity <= sev {
			out = append(out, it)
		}
	}
	return out
}

// HasErrors reports whether any error-severity item was recorded.
func (l *Log) HasErrors() bool { return !l.CleanSince(0) }

// CleanSince reports whether no error-severity item was recorded at or after
// index mark (as returned by Len).
func (l *Log) CleanSince(mark int) bool {
	if mark < 0 {
		mark = 0
	}
	for i := mark; i < len(l.items); i++ {
		if l.items[i].Severity == Error {
			return false
		}
	}
	return true
}

// Err returns the error-severity items as an error, or nil when there are none.
func (l *Log) Err() error {
	if errs := l.Pruning(Error); len(errs) > 0 {
		return errs
	}
	return nil
}
