package datapackage

import (
	"net/url"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Source is where the data of a package or resource came from.
type Source struct {
	Title string
	Path  *url.URL
	Email string

	AdditionalProperties map[string]any
}

// NewSource returns a source with the given title.
func NewSource(title string) *Source { return &Source{Title: title} }

// ParseSource requires a title.
func ParseSource(d map[string]any, log *diag.Log) (*Source, bool) {
	m := descriptor.Map(d)
	title, ok := m.String(keyTitle)
	if !ok {
		log.Error(diag.Missing(), keyTitle)
		return nil, false
	}
	s := NewSource(title)
	r := descriptor.Reader{M: m, Log: log}
	s.Path = readURL(r, keyPath)
	s.Email = r.String(keyEmail)
	s.AdditionalProperties = additional(m, keyTitle, keyPath, keyEmail)
	return s, true
}

func (s *Source) Serialize() map[string]any {
	d := base(s.AdditionalProperties)
	d[keyTitle] = s.Title
	putURL(d, keyPath, s.Path)
	putString(d, keyEmail, s.Email)
	return d
}

func (s *Source) Verify(log *diag.Log) bool { return true }
