package datapackage

import (
	"maps"
	"net/url"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

type verifier interface {
	Verify(log *diag.Log) bool
}

type serializer interface {
	Serialize() map[string]any
}

// additional keeps the keys of m not listed in known, or nil when none remain.
func additional(m descriptor.Map, known ...string) map[string]any {
	extra := m.Without(known...)
	if len(extra) == 0 {
		return nil
	}
	return extra
}

// base starts a serialized descriptor from the passthrough properties.
func base(additional map[string]any) map[string]any {
	d := maps.Clone(additional)
	if d == nil {
		d = map[string]any{}
	}
	return d
}

func putString(d map[string]any, key, v string) {
	if v != "" {
		d[key] = v
	}
}

func putURL(d map[string]any, key string, u *url.URL) {
	if u != nil {
		d[key] = u.String()
	}
}

func putStrings(d map[string]any, key string, v []string) {
	if len(v) > 0 {
		d[key] = append([]string(nil), v...)
	}
}

func putList[T serializer](d map[string]any, key string, items []T) {
	if len(items) == 0 {
		return
	}
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it.Serialize()
	}
	d[key] = out
}

// readURL reads an optional URL; an unusable string is a warning.
func readURL(r descriptor.Reader, key string) *url.URL {
	s, ok := r.M.String(key)
	if !ok {
		r.String(key)
		return nil
	}
	u, ok := descriptor.URL(s)
	if !ok {
		r.Log.Warn(diag.BadInput(s), key)
		return nil
	}
	return u
}

// parseList builds every element of the object array at key in a sub log
// scoped to key. Elements that fail to build are skipped.
func parseList[T any](r descriptor.Reader, key string, parse func(map[string]any, *diag.Log) (T, bool)) []T {
	ds := r.Maps(key)
	if len(ds) == 0 {
		return nil
	}
	sub := r.Log.Sub(key)
	defer r.Log.Merge(sub)
	out := make([]T, 0, len(ds))
	for _, d := range ds {
		if v, ok := parse(d, sub); ok {
			out = append(out, v)
		}
	}
	return out
}

// verifyList verifies every item in a sub log scoped to key. All items are
// verified even after one fails.
func verifyList[T verifier](log *diag.Log, key string, items []T) bool {
	if len(items) == 0 {
		return true
	}
	sub := log.Sub(key)
	valid := true
	for _, it := range items {
		if !it.Verify(sub) {
			valid = false
		}
	}
	log.Merge(sub)
	return valid
}
