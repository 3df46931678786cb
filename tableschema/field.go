package tableschema

import (
	"maps"
	"net/url"
	"slices"

	"golang.org/x/text/cases"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Field descriptor keys.
const (
	keyName        = "name"
	keyTitle       = "title"
	keyDescription = "description"
	keyType        = "type"
	keyFormat      = "format"
	keyRDFType     = "rdfType"
	keyConstraints = "constraints"
	keyRequired    = "required"
	keyUnique      = "unique"
	keyTrueValues  = "trueValues"
	keyFalseValues = "falseValues"
	keyBareNumber  = "bareNumber"
)

var fieldKeys = []string{
	keyName, keyTitle, keyDescription, keyType, keyFormat, keyRDFType,
	keyConstraints, keyTrueValues, keyFalseValues, keyBareNumber,
}

// Constraints are the column constraints this package understands. Other
// constraint keys are kept in AdditionalProperties.
type Constraints struct {
	Required *bool
	Unique   *bool

	AdditionalProperties map[string]any
}

// Field describes one column.
//
// Two fields are Equal when their names match case-insensitively. Whether two
// *Field values are the same field is a pointer comparison; foreign keys bound
// inside a package point at the target schema's own *Field values.
type Field struct {
	Name        string
	Title       string
	Description string
	RDFType     *url.URL
	Type        FieldType
	Format      string
	Constraints Constraints
	TrueValues  []string
	FalseValues []string
	BareNumber  *bool

	AdditionalProperties map[string]any
}

// NewField returns a string field with default format and boolean tokens.
func NewField(name string) *Field {
	return &Field{
		Name:        name,
		Type:        TypeString,
		Format:      FormatDefault,
		TrueValues:  slices.Clone(DefaultTrueValues),
		FalseValues: slices.Clone(DefaultFalseValues),
	}
}

// FoldName is the case-insensitive key used for field equality.
func FoldName(name string) string { return cases.Fold().String(name) }

// Key returns the case-folded name.
func (f *Field) Key() string { return FoldName(f.Name) }

// Equal compares names case-insensitively.
func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Key() == o.Key()
}

// ParseField builds a Field from its descriptor. A missing name is the only
// failure; problems with other keys are logged and defaults kept.
func ParseField(d map[string]any, log *diag.Log) (*Field, bool) {
	m := descriptor.Map(d)
	name, ok := m.String(keyName)
	if !ok {
		log.Error(diag.Missing(), keyName)
		return nil, false
	}
	f := NewField(name)
	r := descriptor.Reader{M: m, Log: log}

	f.Title = r.String(keyTitle)
	f.Description = r.String(keyDescription)

	if s, ok := m.String(keyRDFType); ok {
		if u, ok := descriptor.URL(s); ok {
			f.RDFType = u
		} else {
			log.Warn(diag.BadInput(s), keyRDFType)
		}
	}

	if s := r.String(keyType); s != "" {
		if t, ok := ParseFieldType(s); ok {
			f.Type = t
		} else {
			log.Error(diag.UnknownEnumeration(s), keyType)
		}
	}

	if s := r.String(keyFormat); s != "" {
		if ValidFormat(f.Type, s) {
			f.Format = s
		} else {
			log.Error(diag.UnknownEnumeration(s), keyFormat)
		}
	}

	if c, ok := r.Map(keyConstraints); ok {
		cr := descriptor.Reader{M: c, Log: log.Sub(keyConstraints)}
		if b, ok := cr.Bool(keyRequired); ok {
			f.Constraints.Required = &b
		}
		if b, ok := cr.Bool(keyUnique); ok {
			f.Constraints.Unique = &b
		}
		log.Merge(cr.Log)
		if extra := c.Without(keyRequired, keyUnique); len(extra) > 0 {
			f.Constraints.AdditionalProperties = extra
		}
	}

	if vs := r.Strings(keyTrueValues); vs != nil {
		f.TrueValues = vs
	}
	if vs := r.Strings(keyFalseValues); vs != nil {
		f.FalseValues = vs
	}
	if b, ok := r.Bool(keyBareNumber); ok {
		f.BareNumber = &b
	}

	if extra := m.Without(fieldKeys...); len(extra) > 0 {
		f.AdditionalProperties = extra
	}
	return f, true
}

// Serialize renders the field descriptor. name and type are always present.
func (f *Field) Serialize() map[string]any {
	d := maps.Clone(f.AdditionalProperties)
	if d == nil {
		d = map[string]any{}
	}
	d[keyName] = f.Name
	d[keyType] = string(f.Type)
	if f.Title != "" {
		d[keyTitle] = f.Title
	}
	if f.Description != "" {
		d[keyDescription] = f.Description
	}
	if f.RDFType != nil {
		d[keyRDFType] = f.RDFType.String()
	}
	if f.Format != "" && f.Format != FormatDefault {
		d[keyFormat] = f.Format
	}

	c := maps.Clone(f.Constraints.AdditionalProperties)
	if c == nil {
		c = map[string]any{}
	}
	if f.Constraints.Required != nil {
		c[keyRequired] = *f.Constraints.Required
	}
	if f.Constraints.Unique != nil {
		c[keyUnique] = *f.Constraints.Unique
	}
	if len(c) > 0 {
		d[keyConstraints] = c
	}

	if f.Type == TypeBoolean {
		if !slices.Equal(f.TrueValues, DefaultTrueValues) {
			d[keyTrueValues] = slices.Clone(f.TrueValues)
		}
		if !slices.Equal(f.FalseValues, DefaultFalseValues) {
			d[keyFalseValues] = slices.Clone(f.FalseValues)
		}
	}
	if f.BareNumber != nil && (f.Type == TypeNumber || f.Type == TypeInteger) {
		d[keyBareNumber] = *f.BareNumber
	}
	return d
}

// Verify requires a name and a known type.
func (f *Field) Verify(log *diag.Log) bool {
	mark := log.Len()
	if f.Name == "" {
		log.Error(diag.Missing(), keyName)
	}
	if !f.Type.Known() {
		log.Error(diag.UnknownEnumeration(string(f.Type)), keyType)
	}
	if !ValidFormat(f.Type, f.Format) && f.Format != "" {
		log.Error(diag.UnknownEnumeration(f.Format), keyFormat)
	}
	return log.CleanSince(mark)
}

// Fields is an ordered field list.
type Fields []*Field

// Names returns the field names in order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// Unique returns the first field of every case-insensitive name, in order.
func (fs Fields) Unique() Fields {
	seen := make(map[string]struct{}, len(fs))
	out := make(Fields, 0, len(fs))
	for _, f := range fs {
		k := f.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Exact returns the first field whose name matches case-sensitively.
func (fs Fields) Exact(name string) *Field {
	for _, f := range fs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Folded returns the first field whose name matches case-insensitively.
func (fs Fields) Folded(name string) *Field {
	k := FoldName(name)
	for _, f := range fs {
		if f.Key() == k {
			return f
		}
	}
	return nil
}

// Contains reports whether f itself (not merely an equal field) is in fs.
func (fs Fields) Contains(f *Field) bool { return slices.Contains(fs, f) }
