package datapackage

import (
	"maps"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
	"github.com/reoring/datapackage/tableschema"
)

// TabularPackage is a package whose resources are all tabular. Foreign keys
// between its resources are bound to the target schema's fields.
type TabularPackage struct {
	Package
}

// NewTabularPackage returns an empty package with the tabular profile.
func NewTabularPackage() *TabularPackage {
	p := NewPackage()
	p.Profile = TabularPackageProfileName
	return &TabularPackage{Package: *p}
}

// TabularPackageProfile builds tabular packages.
var TabularPackageProfile = Profile[PackageVariant]{
	Name: TabularPackageProfileName,
	Build: func(d map[string]any, log *diag.Log) (PackageVariant, bool) {
		p, ok := ParseTabularPackage(d, log)
		if !ok {
			return nil, false
		}
		return p, true
	},
}

func tabularResourceRegistry() *Registry[ResourceVariant] {
	r := NewRegistry[ResourceVariant]()
	r.Add(TabularResourceProfile)
	return r
}

// pendingKeys are the unbound foreign keys of one resource's schema.
type pendingKeys struct {
	owner *TabularResource
	keys  []tableschema.PendingForeignKey
}

// ParseTabularPackage builds a tabular package in two passes. Resources are
// built first with their foreign keys held back as names; the keys are then
// bound once every resource exists, so a key may reference a resource that
// appears later in the list. Any resource or key that cannot be built fails
// the whole package.
func ParseTabularPackage(d map[string]any, log *diag.Log) (*TabularPackage, bool) {
	m := descriptor.Map(d)
	t := NewTabularPackage()
	t.parseMetadata(m, log)
	if t.Profile != TabularPackageProfileName {
		log.Error(diag.BadInput(t.Profile), keyProfile)
		return nil, false
	}

	pending, ok := t.parseTabularResources(m, log)
	if !ok {
		return nil, false
	}
	if !t.bindForeignKeys(pending, log) {
		return nil, false
	}
	return t, true
}

func (t *TabularPackage) parseTabularResources(m descriptor.Map, log *diag.Log) ([]pendingKeys, bool) {
	if !m.Has(keyResources) {
		return nil, true
	}
	rds, ok := m.Maps(keyResources)
	if !ok {
		log.Error(diag.BadInput(m[keyResources]), keyResources)
		return nil, false
	}

	reg := tabularResourceRegistry()
	resourcesLog := log.Sub(keyResources)
	defer log.Merge(resourcesLog)

	var pending []pendingKeys
	failed := false
	for _, rd := range rds {
		stripped, raw, ok := withoutForeignKeys(rd, resourcesLog)
		if !ok {
			failed = true
			continue
		}
		if _, known := reg.Lookup(stripped); !known {
			failed = true
			resourcesLog.Error(diag.BadInput(ProfileName(stripped)), keyProfile)
			continue
		}
		v, ok := reg.Resolve(stripped, resourcesLog)
		if !ok {
			failed = true
			continue
		}
		tr := v.(*TabularResource)
		t.Resources = append(t.Resources, tr)
		if len(raw) == 0 || tr.Schema == nil {
			continue
		}
		pk := pendingKeys{owner: tr}
		fkLog := resourcesLog.Sub(keySchema, tableschema.KeyForeignKeys)
		for _, fd := range raw {
			p, ok := tableschema.ParsePendingForeignKey(fd, fkLog)
			if !ok {
				failed = true
				continue
			}
			pk.keys = append(pk.keys, p)
		}
		resourcesLog.Merge(fkLog)
		pending = append(pending, pk)
	}
	return pending, !failed
}

// withoutForeignKeys returns a copy of a resource descriptor whose schema has
// no foreignKeys, along with the removed key descriptors. A foreignKeys value
// that is not a list of objects is an error.
func withoutForeignKeys(rd descriptor.Map, log *diag.Log) (descriptor.Map, []descriptor.Map, bool) {
	sd, ok := rd.Map(keySchema)
	if !ok || !sd.Has(tableschema.KeyForeignKeys) {
		return rd, nil, true
	}
	raw, ok := sd.Maps(tableschema.KeyForeignKeys)
	if !ok {
		log.Error(diag.BadInput(sd[tableschema.KeyForeignKeys]), keySchema, tableschema.KeyForeignKeys)
		return nil, nil, false
	}
	out := maps.Clone(rd)
	out[keySchema] = map[string]any(sd.Without(tableschema.KeyForeignKeys))
	return out, raw, true
}

// bindForeignKeys resolves local fields against the owning schema and
// reference fields against the target resource's schema. A target without a
// schema yields a key with no reference fields, which Verify rejects.
func (t *TabularPackage) bindForeignKeys(pending []pendingKeys, log *diag.Log) bool {
	schemaLog := log.Sub(keyResources, keySchema)
	defer log.Merge(schemaLog)

	localPath := diag.Path{tableschema.KeyForeignKeys, tableschema.KeyFields}
	targetPath := diag.Path{tableschema.KeyForeignKeys, tableschema.KeyReference, tableschema.KeyFields}
	fieldsPath := diag.Path{tableschema.KeyFields}

	for _, pk := range pending {
		own := pk.owner.Schema
		for _, p := range pk.keys {
			fields, ok := tableschema.ResolveFields(p.Fields, own.Fields, localPath, fieldsPath, schemaLog)
			if !ok {
				return false
			}
			target := own
			if !p.SelfReferencing() {
				tr, ok := t.TabularResource(p.Resource)
				if !ok {
					schemaLog.Error(diag.BadInput(p.Resource), tableschema.KeyForeignKeys, tableschema.KeyReference, tableschema.KeyResource)
					return false
				}
				target = tr.Schema
			}
			var refFields tableschema.Fields
			if target != nil {
				refFields, ok = tableschema.ResolveFields(p.ReferenceFields, target.Fields, targetPath, fieldsPath, schemaLog)
				if !ok {
					return false
				}
			}
			own.ForeignKeys = append(own.ForeignKeys, tableschema.NewForeignKey(fields, tableschema.Reference{Resource: p.Resource, Fields: refFields}))
		}
	}
	return true
}

// TabularResource returns the first resource named name if it is tabular.
func (t *TabularPackage) TabularResource(name string) (*TabularResource, bool) {
	r, ok := t.Resource(name)
	if !ok {
		return nil, false
	}
	tr, ok := r.(*TabularResource)
	return tr, ok
}

// TabularResources returns the tabular resources in order.
func (t *TabularPackage) TabularResources() []*TabularResource {
	var out []*TabularResource
	for _, r := range t.Resources {
		if tr, ok := r.(*TabularResource); ok {
			out = append(out, tr)
		}
	}
	return out
}

// Verify extends Package.Verify with the tabular profile, tabular resources
// only, and foreign key references.
func (t *TabularPackage) Verify(log *diag.Log) bool {
	mark := log.Len()
	valid := t.Package.Verify(log)
	if t.Profile != TabularPackageProfileName {
		valid = false
		log.Error(diag.BadInput(t.Profile), keyProfile)
	}
	for _, r := range t.Resources {
		if _, ok := r.(*TabularResource); !ok {
			valid = false
			log.Error(diag.BadInput(r.Base().Profile), keyResources, keyProfile)
		}
	}
	if !t.VerifyForeignKeyReferences(log) {
		valid = false
	}
	return valid && log.CleanSince(mark)
}

// VerifyForeignKeyReferences checks that every foreign key targets a tabular
// resource of this package and that its reference fields belong to the
// target's schema. Targets without a schema are not checked.
func (t *TabularPackage) VerifyForeignKeyReferences(log *diag.Log) bool {
	schemaLog := log.Sub(keyResources, keySchema)
	defer log.Merge(schemaLog)

	valid := true
	for _, tr := range t.TabularResources() {
		if tr.Schema == nil {
			continue
		}
		for _, fk := range tr.Schema.ForeignKeys {
			name := fk.Reference.Resource
			if name == tableschema.SelfReference {
				name = tr.Name
			}
			target, ok := t.TabularResource(name)
			if !ok {
				valid = false
				schemaLog.Error(diag.BadInput(fk.Reference.Resource), tableschema.KeyForeignKeys, tableschema.KeyReference, tableschema.KeyResource)
				continue
			}
			if target.Schema == nil {
				continue
			}
			v, _ := target.Schema.Fields.VerifyReferences(fk.Reference.Fields,
				diag.Path{tableschema.KeyFields},
				diag.Path{tableschema.KeyForeignKeys, tableschema.KeyReference, tableschema.KeyFields},
				schemaLog)
			valid = valid && v
		}
	}
	return valid
}
