package datapackage

import (
	"strings"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
	"github.com/reoring/datapackage/tableschema"
)

const keyDialect = "dialect"

// TabularResource is a resource holding a table described by a Schema and,
// for CSV files, a Dialect.
type TabularResource struct {
	Resource
	Dialect *Dialect
	Schema  *tableschema.Schema
}

// NewTabularResource returns a tabular resource with the default dialect and
// no schema.
func NewTabularResource(name string) *TabularResource {
	r := NewResource(name)
	r.Profile = TabularResourceProfileName
	return &TabularResource{Resource: *r, Dialect: NewDialect()}
}

// TabularResourceProfile builds tabular resources.
var TabularResourceProfile = Profile[ResourceVariant]{
	Name: TabularResourceProfileName,
	Build: func(d map[string]any, log *diag.Log) (ResourceVariant, bool) {
		r, ok := ParseTabularResource(d, log)
		if !ok {
			return nil, false
		}
		return r, true
	},
}

// ParseTabularResource requires a name and the tabular-data-resource profile.
// A schema that fails to build is logged and left nil.
func ParseTabularResource(d map[string]any, log *diag.Log) (*TabularResource, bool) {
	m := descriptor.Map(d)
	res, ok := parseResource(m, log, keyDialect)
	if !ok {
		return nil, false
	}
	if res.Profile != TabularResourceProfileName {
		log.Error(diag.BadInput(res.Profile), keyProfile)
		return nil, false
	}
	res.RawSchema = nil
	t := &TabularResource{Resource: *res, Dialect: NewDialect()}
	rd := descriptor.Reader{M: m, Log: log}

	if dd, ok := rd.Map(keyDialect); ok {
		dialectLog := log.Sub(keyDialect)
		t.Dialect, _ = ParseDialect(dd, dialectLog)
		log.Merge(dialectLog)
	}
	if sd, ok := rd.Map(keySchema); ok {
		schemaLog := log.Sub(keySchema)
		if s, ok := tableschema.ParseSchema(sd, schemaLog); ok {
			t.Schema = s
		}
		log.Merge(schemaLog)
	}
	return t, true
}

// Serialize renders the shared resource keys plus schema and non-default
// dialect values.
func (t *TabularResource) Serialize() map[string]any {
	d := t.Resource.Serialize()
	delete(d, keySchema)
	if t.Schema != nil {
		d[keySchema] = t.Schema.Serialize()
	}
	if t.Dialect != nil {
		if dd := t.Dialect.Serialize(); len(dd) > 0 {
			d[keyDialect] = dd
		}
	}
	return d
}

// IsCSV reports whether the media type or format names CSV.
func (t *TabularResource) IsCSV() bool {
	return strings.EqualFold(t.MediaType, "text/csv") || strings.EqualFold(t.Format, "csv")
}

// Verify extends Resource.Verify with the profile, dialect, schema, CSV
// format for external files and the shape of inline data.
func (t *TabularResource) Verify(log *diag.Log) bool {
	mark := log.Len()
	valid := t.Resource.Verify(log)

	if t.Profile != TabularResourceProfileName {
		valid = false
		log.Error(diag.BadInput(t.Profile), keyProfile)
	}
	if t.Dialect != nil {
		dialectLog := log.Sub(keyDialect)
		if !t.Dialect.Verify(dialectLog) {
			valid = false
		}
		log.Merge(dialectLog)
	}
	if t.Schema == nil {
		valid = false
		log.Error(diag.Missing(), keySchema)
	} else {
		schemaLog := log.Sub(keySchema)
		if !t.Schema.Verify(schemaLog) {
			valid = false
		}
		log.Merge(schemaLog)
	}
	if len(t.Paths) > 0 && !t.IsCSV() {
		valid = false
		log.Error(diag.Conflicting(keyMediaType), keyPath)
		log.Error(diag.Conflicting(keyFormat), keyPath)
	}
	if t.Data != nil && !tabularData(t.Data) {
		valid = false
		log.Error(diag.BadInput(nil), keyData)
	}
	return valid && log.CleanSince(mark)
}

// tabularData accepts a list of rows (each a list) or an object.
func tabularData(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return true
	case []any:
		for _, row := range t {
			if _, ok := row.([]any); !ok {
				return false
			}
		}
		return true
	case [][]any:
		return true
	}
	return false
}
