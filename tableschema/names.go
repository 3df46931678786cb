package tableschema

import "github.com/reoring/datapackage/diag"

// ResolveFields maps names onto candidates. Each name resolves to the first
// candidate with exactly that name, otherwise to the first candidate matching
// case-insensitively; the fallback is logged as a warning at keyPath
// conflicting with referencingKeyPath. An unresolvable name is logged as an
// error and resolution stops.
func ResolveFields(names []string, candidates Fields, keyPath, referencingKeyPath diag.Path, log *diag.Log) (Fields, bool) {
	out := make(Fields, 0, len(names))
	for _, name := range names {
		if f := candidates.Exact(name); f != nil {
			out = append(out, f)
			continue
		}
		if f := candidates.Unique().Folded(name); f != nil {
			log.Append(keyPath, diag.Warning, diag.Conflicting(referencingKeyPath...))
			out = append(out, f)
			continue
		}
		log.Append(keyPath, diag.Error, diag.Conflicting(referencingKeyPath...))
		return nil, false
	}
	return out, true
}

// VerifyReferences checks that every field in refs names a field of fs.
//
// keyPath locates fs and referencingKeyPath locates refs, both relative to
// the log base. A name without an exact match that matches case-insensitively
// is a warning; a name matching nothing is an error. Two references landing
// on the same field of fs make the reference list not unique, which is a
// warning only.
func (fs Fields) VerifyReferences(refs Fields, keyPath, referencingKeyPath diag.Path, log *diag.Log) (valid, unique bool) {
	valid, unique = true, true
	folded := fs.Unique()
	used := make(map[string]struct{}, len(refs))
	use := func(f *Field) {
		k := f.Key()
		if _, dup := used[k]; dup {
			unique = false
			log.Append(referencingKeyPath, diag.Warning, diag.Conflicting(referencingKeyPath...))
			return
		}
		used[k] = struct{}{}
	}
	for _, ref := range refs {
		if f := fs.Exact(ref.Name); f != nil {
			use(f)
			continue
		}
		if f := folded.Folded(ref.Name); f != nil {
			log.Append(referencingKeyPath, diag.Warning, diag.Conflicting(keyPath...))
			use(f)
			continue
		}
		valid = false
		log.Append(referencingKeyPath, diag.Error, diag.BadInput(ref.Name))
	}
	return valid, unique
}
