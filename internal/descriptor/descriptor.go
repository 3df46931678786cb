// Package descriptor provides typed access to decoded descriptor trees.
//
// Values follow the shapes produced by the source package: map[string]any,
// []any, string, bool, json.Number (float64 and int are accepted too) and nil.
package descriptor

import (
	"maps"
	"math"
	"net/url"
	"strconv"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/reoring/datapackage/diag"
)

// Map is one descriptor object.
type Map map[string]any

// Has reports whether key is present, including an explicit null.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m Map) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func (m Map) Bool(key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// Uint reads a non-negative integer.
func (m Map) Uint(key string) (uint64, bool) {
	switch v := m[key].(type) {
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 64)
		return n, err == nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, false
		}
		return uint64(v), true
	case int:
		return uint64(v), v >= 0
	case uint64:
		return v, true
	}
	return 0, false
}

// Map reads a nested object.
func (m Map) Map(key string) (Map, bool) { return AsMap(m[key]) }

// Maps reads an array whose elements are all objects.
func (m Map) Maps(key string) ([]Map, bool) {
	arr, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]Map, 0, len(arr))
	for _, v := range arr {
		mm, ok := AsMap(v)
		if !ok {
			return nil, false
		}
		out = append(out, mm)
	}
	return out, true
}

// Strings reads either a single string or an array of strings. A single
// string is returned as a one-element slice.
func (m Map) Strings(key string) ([]string, bool) {
	switch v := m[key].(type) {
	case string:
		return []string{v}, true
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Without returns a shallow copy of m minus the given keys.
func (m Map) Without(keys ...string) Map {
	out := maps.Clone(m)
	if out == nil {
		out = Map{}
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// AsMap accepts both Map and map[string]any.
func AsMap(v any) (Map, bool) {
	switch t := v.(type) {
	case Map:
		return t, true
	case map[string]any:
		return Map(t), true
	}
	return nil, false
}

// Reader wraps a Map with a log: typed reads of optional keys record a
// BadInput warning when the key is present but has the wrong shape.
type Reader struct {
	M   Map
	Log *diag.Log
}

func (r Reader) misfit(key string) {
	if r.M.Has(key) && r.M[key] != nil {
		r.Log.Warn(diag.BadInput(r.M[key]), key)
	}
}

func (r Reader) String(key string) string {
	s, ok := r.M.String(key)
	if !ok {
		r.misfit(key)
	}
	return s
}

func (r Reader) Bool(key string) (bool, bool) {
	b, ok := r.M.Bool(key)
	if !ok {
		r.misfit(key)
	}
	return b, ok
}

func (r Reader) Uint(key string) (uint64, bool) {
	n, ok := r.M.Uint(key)
	if !ok {
		r.misfit(key)
	}
	return n, ok
}

func (r Reader) Strings(key string) []string {
	s, ok := r.M.Strings(key)
	if !ok {
		r.misfit(key)
	}
	return s
}

func (r Reader) Maps(key string) []Map {
	ms, ok := r.M.Maps(key)
	if !ok {
		r.misfit(key)
	}
	return ms
}

func (r Reader) Map(key string) (Map, bool) {
	mm, ok := r.M.Map(key)
	if !ok {
		r.misfit(key)
	}
	return mm, ok
}

// URL parses an absolute or relative URL reference. Empty strings and strings
// containing whitespace or control characters are rejected.
func URL(s string) (*url.URL, bool) {
	if s == "" {
		return nil, false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return nil, false
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}
