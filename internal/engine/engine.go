package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Options bounds the decoded tree. MaxDepth <= 0 means unlimited.
type Options struct {
	MaxDepth int
}

// Duplicate records an object key that appeared more than once. Path ends
// with the duplicated key; array positions appear as decimal indices.
type Duplicate struct {
	Path []string
}

// Result is a decoded tree together with the duplicates seen while building it.
// For duplicated keys the last occurrence wins.
type Result struct {
	Value      any
	Duplicates []Duplicate
}

var (
	ErrMaxDepth      = errors.New("engine: max depth exceeded")
	ErrTrailingData  = errors.New("engine: unexpected data after top-level value")
	ErrUnexpectedKey = errors.New("engine: unexpected token in object")
)

// Decode builds an "any" value from the streaming token source. Numbers are
// kept as json.Number so integer precision survives.
func Decode(src TokenSource, opts Options) (Result, error) {
	d := &decoder{src: src, opts: opts}
	tok, err := src.NextToken()
	if err != nil {
		return Result{}, err
	}
	v, err := d.value(tok, nil, 0)
	if err != nil {
		return Result{}, err
	}
	if tok, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w (offset %d)", ErrTrailingData, tok.Offset)
	}
	return Result{Value: v, Duplicates: d.dups}, nil
}

type decoder struct {
	src  TokenSource
	opts Options
	dups []Duplicate
}

func (d *decoder) value(tok Token, path []string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object(path, depth+1)
	case KindBeginArray:
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (d *decoder) enter(depth int) error {
	if d.opts.MaxDepth > 0 && depth > d.opts.MaxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (d *decoder) object(path []string, depth int) (any, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	m := make(map[string]any)
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedKey
		}
		child := appendPath(path, tok.String)
		if _, seen := m[tok.String]; seen {
			d.dups = append(d.dups, Duplicate{Path: child})
		}
		vt, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, child, depth)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func (d *decoder) array(path []string, depth int) (any, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	arr := []any{}
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, appendPath(path, strconv.Itoa(len(arr))), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func appendPath(path []string, key string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, key)
}
