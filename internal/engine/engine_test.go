package engine

import (
	"io"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

func obj(inner ...Token) []Token {
	out := []Token{{Kind: KindBeginObject}}
	out = append(out, inner...)
	return append(out, Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }
func str(s string) Token { return Token{Kind: KindString, String: s} }

func TestDecode_BuildsTreeWithNumbers(t *testing.T) {
	toks := obj(
		key("name"), str("x"),
		key("bytes"), Token{Kind: KindNumber, Number: "12345678901234567890"},
		key("ok"), Token{Kind: KindBool, Bool: true},
		key("none"), Token{Kind: KindNull},
	)
	res, err := Decode(&sliceSource{toks: toks}, Options{})
	require.NoError(t, err)
	m := res.Value.(map[string]any)
	assert.Equal(t, "x", m["name"])
	assert.Equal(t, json.Number("12345678901234567890"), m["bytes"])
	assert.Equal(t, true, m["ok"])
	assert.Contains(t, m, "none")
	assert.Empty(t, res.Duplicates)
}

func TestDecode_DuplicatesCarryPath(t *testing.T) {
	inner := obj(key("name"), str("a"), key("name"), str("b"))
	toks := []Token{{Kind: KindBeginObject}, key("resources"), {Kind: KindBeginArray}}
	toks = append(toks, inner...)
	toks = append(toks, Token{Kind: KindEndArray}, Token{Kind: KindEndObject})

	res, err := Decode(&sliceSource{toks: toks}, Options{})
	require.NoError(t, err)
	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, []string{"resources", "0", "name"}, res.Duplicates[0].Path)

	resources := res.Value.(map[string]any)["resources"].([]any)
	assert.Equal(t, "b", resources[0].(map[string]any)["name"], "last occurrence wins")
}

func TestDecode_MaxDepth(t *testing.T) {
	toks := obj(key("a"), Token{Kind: KindBeginObject}, key("b"), str("c"), Token{Kind: KindEndObject})
	_, err := Decode(&sliceSource{toks: toks}, Options{MaxDepth: 1})
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, err = Decode(&sliceSource{toks: toks}, Options{MaxDepth: 2})
	assert.NoError(t, err)
}

func TestDecode_TrailingData(t *testing.T) {
	toks := append(obj(), str("extra"))
	_, err := Decode(&sliceSource{toks: toks}, Options{})
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestDecode_Truncated(t *testing.T) {
	toks := []Token{{Kind: KindBeginObject}, key("a")}
	_, err := Decode(&sliceSource{toks: toks}, Options{})
	assert.Error(t, err)
}
