package datapackage

import (
	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// DefaultProfile is the profile name resolved for descriptors without a
// string "profile" key.
const DefaultProfile = "default"

// Profile names of the built-in variants.
const (
	PackageProfileName         = "data-package"
	TabularPackageProfileName  = "tabular-data-package"
	ResourceProfileName        = "data-resource"
	TabularResourceProfileName = "tabular-data-resource"
)

const keyProfile = "profile"

// Profile is a named constructor for one variant of T. Build logs problems to
// log and reports false when the descriptor cannot produce a value.
type Profile[T any] struct {
	Name  string
	Build func(d map[string]any, log *diag.Log) (T, bool)
}

// Registry resolves descriptors to variants by their "profile" key.
type Registry[T any] struct {
	profiles map[string]Profile[T]
}

// NewRegistry returns an empty registry with no default profile.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{profiles: map[string]Profile[T]{}}
}

// Add registers p under its own name, replacing any previous registration.
func (r *Registry[T]) Add(p Profile[T]) {
	r.profiles[p.Name] = p
}

// SetDefault registers p under DefaultProfile.
func (r *Registry[T]) SetDefault(p Profile[T]) {
	r.profiles[DefaultProfile] = Profile[T]{Name: DefaultProfile, Build: p.Build}
}

// ProfileName returns the profile a descriptor asks for.
func ProfileName(d map[string]any) string {
	if s, ok := descriptor.Map(d).String(keyProfile); ok {
		return s
	}
	return DefaultProfile
}

// Lookup returns the profile registered for d, without building anything.
func (r *Registry[T]) Lookup(d map[string]any) (Profile[T], bool) {
	p, ok := r.profiles[ProfileName(d)]
	return p, ok
}

// Resolve builds the variant registered for d. When nothing is registered
// under the resolved name it returns false without logging; callers decide
// whether that is a problem.
func (r *Registry[T]) Resolve(d map[string]any, log *diag.Log) (T, bool) {
	p, ok := r.Lookup(d)
	if !ok || p.Build == nil {
		var zero T
		return zero, false
	}
	return p.Build(d, log)
}
