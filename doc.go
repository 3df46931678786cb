// Package datapackage reads, verifies and writes data package descriptors.
//
// A descriptor is decoded into a generic value tree (see package source) and
// built into typed entities: a Package owning Resources, Licenses, Sources and
// Contributors. Descriptors naming the tabular profiles build a
// TabularPackage whose TabularResources carry a CSV Dialect and a
// tableschema.Schema, with foreign keys bound to the referenced fields.
//
// Construction and verification are separate steps. Both report findings to a
// diag.Log instead of stopping at the first problem:
//
//	log := diag.New()
//	p, err := datapackage.LoadFile(ctx, "testdata/package/exemplar", datapackage.DefaultRegistry(), log)
//	if err != nil {
//		// I/O, decoding, or the package could not be built; log says why.
//	}
//	ok := p.Verify(log)
//
// Registries map the "profile" key to constructors, so callers can add their
// own package or resource variants.
package datapackage
