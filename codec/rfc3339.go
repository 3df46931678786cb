// Package codec converts between wire strings and domain values.
package codec

import (
	"errors"
	"fmt"
	"time"
)

// Codec converts between a wire representation A and a domain value B.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

// ErrInvalidTime is wrapped by Decode failures of TimeRFC3339.
var ErrInvalidTime = errors.New("codec: invalid RFC3339 time")

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, a)
	}
	return t, nil
}

func (rfc3339Codec) Encode(b time.Time) (string, error) {
	if b.IsZero() {
		return "", fmt.Errorf("%w: zero time", ErrInvalidTime)
	}
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
