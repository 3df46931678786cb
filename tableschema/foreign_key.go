package tableschema

import (
	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Foreign key descriptor keys.
const (
	keyFields    = "fields"
	keyReference = "reference"
	keyResource  = "resource"
)

// SelfReference is the reference resource name meaning "the resource that
// declares the foreign key".
const SelfReference = ""

// Reference is the target side of a foreign key.
type Reference struct {
	Resource string
	Fields   Fields
}

// ForeignKey pairs local fields with fields of a referenced resource.
type ForeignKey struct {
	Fields    Fields
	Reference Reference
}

// NewForeignKey builds a foreign key from already resolved fields.
func NewForeignKey(fields Fields, ref Reference) *ForeignKey {
	return &ForeignKey{Fields: fields, Reference: ref}
}

// PendingForeignKey is a foreign key whose field names have not been bound to
// Field values yet.
type PendingForeignKey struct {
	Fields          []string
	Resource        string
	ReferenceFields []string
}

// SelfReferencing reports whether the key targets its own resource.
func (p PendingForeignKey) SelfReferencing() bool { return p.Resource == SelfReference }

// ParsePendingForeignKey reads the names of a foreign key descriptor.
// fields, reference and reference.resource are required; reference.fields
// may be a single name or a list. An empty fields list is a warning here and
// an error in Verify.
func ParsePendingForeignKey(d map[string]any, log *diag.Log) (PendingForeignKey, bool) {
	m := descriptor.Map(d)
	fields, ok := m.Strings(keyFields)
	if !ok {
		if m.Has(keyFields) {
			log.Error(diag.BadInput(m[keyFields]), keyFields)
		} else {
			log.Error(diag.Missing(), keyFields)
		}
		return PendingForeignKey{}, false
	}
	if len(fields) == 0 {
		log.Warn(diag.BadInput(fields), keyFields)
	}
	ref, ok := m.Map(keyReference)
	if !ok {
		log.Error(diag.Missing(), keyReference)
		return PendingForeignKey{}, false
	}
	resource, ok := ref.String(keyResource)
	if !ok {
		log.Error(diag.Missing(), keyReference, keyResource)
		return PendingForeignKey{}, false
	}
	refFields, ok := ref.Strings(keyFields)
	if !ok {
		if ref.Has(keyFields) {
			log.Error(diag.BadInput(ref[keyFields]), keyReference, keyFields)
		} else {
			log.Error(diag.Missing(), keyReference, keyFields)
		}
		return PendingForeignKey{}, false
	}
	return PendingForeignKey{Fields: fields, Resource: resource, ReferenceFields: refFields}, true
}

// Detached builds a ForeignKey whose fields are new Field values carrying
// only the declared names.
func (p PendingForeignKey) Detached() *ForeignKey {
	return NewForeignKey(detached(p.Fields), Reference{Resource: p.Resource, Fields: detached(p.ReferenceFields)})
}

func detached(names []string) Fields {
	out := make(Fields, len(names))
	for i, n := range names {
		out[i] = NewField(n)
	}
	return out
}

// ParseForeignKey reads a foreign key without binding it to any schema.
func ParseForeignKey(d map[string]any, log *diag.Log) (*ForeignKey, bool) {
	p, ok := ParsePendingForeignKey(d, log)
	if !ok {
		return nil, false
	}
	return p.Detached(), true
}

// Serialize renders field names on both sides.
func (fk *ForeignKey) Serialize() map[string]any {
	return map[string]any{
		keyFields: fk.Fields.Names(),
		keyReference: map[string]any{
			keyResource: fk.Reference.Resource,
			keyFields:   fk.Reference.Fields.Names(),
		},
	}
}

// Verify requires local fields and as many reference fields as local ones.
func (fk *ForeignKey) Verify(log *diag.Log) bool {
	mark := log.Len()
	if len(fk.Fields) == 0 {
		log.Error(diag.BadInput(fk.Fields.Names()), keyFields)
	}
	if len(fk.Fields) != len(fk.Reference.Fields) {
		log.Error(diag.Conflicting(keyFields), keyReference, keyFields)
	}
	return log.CleanSince(mark)
}
