package diag

import (
	"fmt"
	"strings"

	"github.com/reoring/datapackage/i18n"
)

// Severity orders diagnostics. Error is numerically lower than Warning, so
// filtering "at or above" a level keeps items whose severity is <= the level.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Label returns the localized, capitalized severity name.
func (s Severity) Label() string {
	if s == Error {
		return i18n.T(i18n.CodeSeverityError, nil)
	}
	return i18n.T(i18n.CodeSeverityWarning, nil)
}

// Kind discriminates Entry variants.
type Kind int

const (
	KindBadInput Kind = iota
	KindUnknownEnumeration
	KindMissing
	KindConflicting
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindUnknownEnumeration:
		return "unknown_enumeration"
	case KindMissing:
		return "missing"
	case KindConflicting:
		return "conflicting"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entry describes what went wrong at a key path.
//
// Value is only meaningful for KindBadInput (nil when the offending value is
// not available), Raw for KindUnknownEnumeration and Conflicts for
// KindConflicting, where it holds the other key path relative to the log base.
type Entry struct {
	Kind      Kind
	Value     any
	Raw       string
	Conflicts Path
}

// BadInput records a value of the wrong shape or content; v may be nil.
func BadInput(v any) Entry { return Entry{Kind: KindBadInput, Value: v} }

// UnknownEnumeration records a string outside a closed set of values.
func UnknownEnumeration(s string) Entry { return Entry{Kind: KindUnknownEnumeration, Raw: s} }

// Missing records a required value that is absent.
func Missing() Entry { return Entry{Kind: KindMissing} }

// Conflicting records a conflict with another key path, given relative to the
// base path of the log the item is appended to.
func Conflicting(keyPath ...string) Entry {
	return Entry{Kind: KindConflicting, Conflicts: Path(keyPath).Join()}
}

// Equal compares two entries. BadInput values are compared by their printed form.
func (e Entry) Equal(o Entry) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case KindBadInput:
		if e.Value == nil || o.Value == nil {
			return e.Value == nil && o.Value == nil
		}
		return fmt.Sprint(e.Value) == fmt.Sprint(o.Value)
	case KindUnknownEnumeration:
		return e.Raw == o.Raw
	case KindConflicting:
		return e.Conflicts.Equal(o.Conflicts)
	}
	return true
}

// Item is one recorded diagnostic. Items are never modified after they are
// appended to a Log.
type Item struct {
	BasePath Path
	KeyPath  Path
	Severity Severity
	Entry    Entry
}

// FullPath is BasePath followed by KeyPath.
func (it Item) FullPath() Path { return it.BasePath.Join(it.KeyPath...) }

// Message renders the localized description without the severity label.
func (it Item) Message() string {
	data := map[string]string{"path": it.FullPath().String()}
	code := ""
	switch it.Entry.Kind {
	case KindBadInput:
		code = i18n.CodeBadInput
		if it.Entry.Value != nil {
			code = i18n.CodeBadInputValue
			data["value"] = fmt.Sprint(it.Entry.Value)
		}
	case KindUnknownEnumeration:
		code = i18n.CodeUnknownEnumeration
		data["value"] = it.Entry.Raw
	case KindMissing:
		code = i18n.CodeMissing
	case KindConflicting:
		code = i18n.CodeConflicting
		data["other"] = it.BasePath.Join(it.Entry.Conflicts...).String()
	}
	return i18n.T(code, data)
}

// String renders "<Severity>: <message>", e.g. "Error: Missing value at 'resources.name'."
func (it Item) String() string { return it.Severity.Label() + ": " + it.Message() }

// Items is a list of diagnostics that implements error.
type Items []Item

// Error summarizes the first few items.
func (items Items) Error() string {
	if len(items) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(items), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := items[i]
		// e.g. missing at resources.name
		fmt.Fprintf(b, "%s at %s", it.Entry.Kind, it.FullPath())
	}
	if len(items) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(items))
	}
	return b.String()
}
