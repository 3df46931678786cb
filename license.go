package datapackage

import (
	"net/url"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// License names the terms data is distributed under, by name, by URL or both.
type License struct {
	Name  string
	Path  *url.URL
	Title string

	AdditionalProperties map[string]any
}

// ParseLicense never fails; an unusable license is reported by Verify.
func ParseLicense(d map[string]any, log *diag.Log) (*License, bool) {
	m := descriptor.Map(d)
	r := descriptor.Reader{M: m, Log: log}
	l := &License{
		Name:  r.String(keyName),
		Path:  readURL(r, keyPath),
		Title: r.String(keyTitle),
	}
	l.AdditionalProperties = additional(m, keyName, keyPath, keyTitle)
	return l, true
}

func (l *License) Serialize() map[string]any {
	d := base(l.AdditionalProperties)
	putString(d, keyName, l.Name)
	putURL(d, keyPath, l.Path)
	putString(d, keyTitle, l.Title)
	return d
}

// Verify requires a name or a path.
func (l *License) Verify(log *diag.Log) bool {
	if l.Name == "" && l.Path == nil {
		log.Error(diag.Missing(), keyName)
		log.Error(diag.Missing(), keyPath)
		return false
	}
	return true
}
