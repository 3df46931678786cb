// Package tableschema models the table schema of a tabular resource: its
// fields, primary key and foreign keys.
package tableschema

import (
	"maps"
	"slices"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Schema descriptor keys.
const (
	KeyFields        = keyFields
	KeyMissingValues = "missingValues"
	KeyPrimaryKey    = "primaryKey"
	KeyForeignKeys   = "foreignKeys"
	KeyReference     = keyReference
	KeyResource      = keyResource
)

var schemaKeys = []string{KeyFields, KeyMissingValues, KeyPrimaryKey, KeyForeignKeys}

// DefaultMissingValues applies when a schema declares no missingValues.
var DefaultMissingValues = []string{""}

// Schema is an ordered field list with key declarations. Fields may repeat
// names; Verify reports that.
type Schema struct {
	Fields        Fields
	MissingValues []string
	PrimaryKeys   Fields
	ForeignKeys   []*ForeignKey

	AdditionalProperties map[string]any
}

// NewSchema returns a schema holding fields and no keys.
func NewSchema(fields ...*Field) *Schema { return &Schema{Fields: fields} }

// EffectiveMissingValues returns MissingValues or the default list.
func (s *Schema) EffectiveMissingValues() []string {
	if len(s.MissingValues) == 0 {
		return slices.Clone(DefaultMissingValues)
	}
	return slices.Clone(s.MissingValues)
}

// ParseSchema builds a schema. A field without a name or a primary key or
// foreign key naming an unknown field fails the whole schema. Foreign keys
// are bound to this schema's fields; their reference fields stay detached.
func ParseSchema(d map[string]any, log *diag.Log) (*Schema, bool) {
	s, ok := parseSchemaBody(d, log)
	if !ok {
		return nil, false
	}
	m := descriptor.Map(d)
	if !m.Has(KeyForeignKeys) {
		return s, true
	}
	raw, ok := m.Maps(KeyForeignKeys)
	if !ok {
		log.Error(diag.BadInput(m[KeyForeignKeys]), KeyForeignKeys)
		return nil, false
	}
	fkLog := log.Sub(KeyForeignKeys)
	defer log.Merge(fkLog)
	for _, fd := range raw {
		p, ok := ParsePendingForeignKey(fd, fkLog)
		if !ok {
			continue
		}
		fields, ok := ResolveFields(p.Fields, s.Fields, diag.Path{KeyForeignKeys, keyFields}, diag.Path{KeyFields}, log)
		if !ok {
			return nil, false
		}
		s.ForeignKeys = append(s.ForeignKeys, NewForeignKey(fields, Reference{Resource: p.Resource, Fields: detached(p.ReferenceFields)}))
	}
	return s, true
}

// parseSchemaBody builds everything but the foreign keys.
func parseSchemaBody(d map[string]any, log *diag.Log) (*Schema, bool) {
	m := descriptor.Map(d)
	s := NewSchema()

	if m.Has(KeyFields) {
		fds, ok := m.Maps(KeyFields)
		if !ok {
			log.Error(diag.BadInput(m[KeyFields]), KeyFields)
			return nil, false
		}
		fieldsLog := log.Sub(KeyFields)
		for _, fd := range fds {
			f, ok := ParseField(fd, fieldsLog)
			if !ok {
				log.Merge(fieldsLog)
				return nil, false
			}
			s.Fields = append(s.Fields, f)
		}
		log.Merge(fieldsLog)
	}

	r := descriptor.Reader{M: m, Log: log}
	if mv := r.Strings(KeyMissingValues); mv != nil {
		s.MissingValues = mv
	}

	if m.Has(KeyPrimaryKey) {
		names, ok := m.Strings(KeyPrimaryKey)
		if !ok {
			log.Error(diag.BadInput(m[KeyPrimaryKey]), KeyPrimaryKey)
			return nil, false
		}
		pk, ok := ResolveFields(names, s.Fields, diag.Path{KeyPrimaryKey}, diag.Path{KeyFields}, log)
		if !ok {
			return nil, false
		}
		s.PrimaryKeys = pk
	}

	if extra := m.Without(schemaKeys...); len(extra) > 0 {
		s.AdditionalProperties = extra
	}
	return s, true
}

// Serialize renders the schema, omitting empty lists.
func (s *Schema) Serialize() map[string]any {
	d := maps.Clone(s.AdditionalProperties)
	if d == nil {
		d = map[string]any{}
	}
	if len(s.Fields) > 0 {
		fds := make([]any, len(s.Fields))
		for i, f := range s.Fields {
			fds[i] = f.Serialize()
		}
		d[KeyFields] = fds
	}
	if len(s.MissingValues) > 0 {
		d[KeyMissingValues] = slices.Clone(s.MissingValues)
	}
	if len(s.PrimaryKeys) > 0 {
		d[KeyPrimaryKey] = s.PrimaryKeys.Names()
	}
	if len(s.ForeignKeys) > 0 {
		fks := make([]any, len(s.ForeignKeys))
		for i, fk := range s.ForeignKeys {
			fks[i] = fk.Serialize()
		}
		d[KeyForeignKeys] = fks
	}
	return d
}

// Verify checks fields, primary key and the local side of every foreign key.
// Reference fields are checked by the owning package, which knows the targets.
func (s *Schema) Verify(log *diag.Log) bool {
	mark := log.Len()
	fieldsOK, _ := s.VerifyFields(log)
	pkOK, _ := s.VerifyPrimaryKeys(log)
	fkOK, _ := s.VerifyForeignKeys(log)
	return fieldsOK && pkOK && fkOK && log.CleanSince(mark)
}

// VerifyFields verifies each field and reports whether the names are unique
// case-insensitively. Duplicates are warnings.
func (s *Schema) VerifyFields(log *diag.Log) (valid, unique bool) {
	valid, unique = true, true
	fieldsLog := log.Sub(KeyFields)
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Verify(fieldsLog) {
			valid = false
		}
		k := f.Key()
		if _, dup := seen[k]; dup {
			unique = false
			log.Warn(diag.Conflicting(KeyFields), KeyFields)
			continue
		}
		seen[k] = struct{}{}
	}
	log.Merge(fieldsLog)
	return valid, unique
}

// VerifyPrimaryKeys checks that every primary key names a schema field.
func (s *Schema) VerifyPrimaryKeys(log *diag.Log) (valid, unique bool) {
	return s.Fields.VerifyReferences(s.PrimaryKeys, diag.Path{KeyFields}, diag.Path{KeyPrimaryKey}, log)
}

// VerifyForeignKeys verifies each foreign key and checks its local fields
// against the schema fields.
func (s *Schema) VerifyForeignKeys(log *diag.Log) (valid, unique bool) {
	valid, unique = true, true
	fkLog := log.Sub(KeyForeignKeys)
	for _, fk := range s.ForeignKeys {
		if !fk.Verify(fkLog) {
			valid = false
		}
		v, u := s.Fields.VerifyReferences(fk.Fields, diag.Path{KeyFields}, diag.Path{KeyForeignKeys, keyFields}, log)
		valid = valid && v
		unique = unique && u
	}
	log.Merge(fkLog)
	return valid, unique
}
