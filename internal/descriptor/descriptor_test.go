package descriptor

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/datapackage/diag"
)

func TestMap_Uint(t *testing.T) {
	tests := []struct {
		in   any
		want uint64
		ok   bool
	}{
		{json.Number("42"), 42, true},
		{json.Number("-1"), 0, false},
		{json.Number("1.5"), 0, false},
		{float64(7), 7, true},
		{float64(7.5), 0, false},
		{float64(-1), 0, false},
		{math.Inf(1), 0, false},
		{3, 3, true},
		{-3, 0, false},
		{uint64(9), 9, true},
		{"9", 0, false},
	}
	for _, tt := range tests {
		got, ok := Map{"n": tt.in}.Uint("n")
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestMap_Strings(t *testing.T) {
	m := Map{"one": "a", "list": []any{"a", "b"}, "typed": []string{"c"}, "mixed": []any{"a", 1}}
	got, ok := m.Strings("one")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got)
	got, _ = m.Strings("list")
	assert.Equal(t, []string{"a", "b"}, got)
	got, _ = m.Strings("typed")
	assert.Equal(t, []string{"c"}, got)
	_, ok = m.Strings("mixed")
	assert.False(t, ok)
	_, ok = m.Strings("absent")
	assert.False(t, ok)
}

func TestMap_Maps(t *testing.T) {
	m := Map{"ok": []any{map[string]any{"a": 1}, Map{"b": 2}}, "bad": []any{map[string]any{}, "x"}}
	ms, ok := m.Maps("ok")
	require.True(t, ok)
	assert.Len(t, ms, 2)
	_, ok = m.Maps("bad")
	assert.False(t, ok)
}

func TestMap_Without(t *testing.T) {
	m := Map{"a": 1, "b": 2}
	out := m.Without("a")
	assert.Equal(t, Map{"b": 2}, out)
	assert.Len(t, m, 2)
	assert.Equal(t, Map{}, Map(nil).Without("a"))
}

func TestReader_WrongShapeWarns(t *testing.T) {
	log := diag.New("resources")
	r := Reader{M: Map{"title": 1, "bytes": "many", "absent": nil}, Log: log}

	assert.Empty(t, r.String("title"))
	_, ok := r.Uint("bytes")
	assert.False(t, ok)
	assert.Empty(t, r.String("absent"))
	assert.Empty(t, r.String("missing"))

	items := log.Items()
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, diag.Warning, it.Severity)
		assert.Equal(t, diag.KindBadInput, it.Entry.Kind)
	}
	assert.Equal(t, "resources.title", items[0].FullPath().String())
	assert.Equal(t, "resources.bytes", items[1].FullPath().String())
}

func TestURL(t *testing.T) {
	for _, s := range []string{"http://example.com", "data/file.csv", "mailto:a@b.c"} {
		u, ok := URL(s)
		require.True(t, ok, s)
		assert.Equal(t, s, u.String())
	}
	for _, s := range []string{"", " ", "a b", "tab\there", "line\n"} {
		_, ok := URL(s)
		assert.False(t, ok, "%q", s)
	}
}
