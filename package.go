package datapackage

import (
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/reoring/datapackage/codec"
	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Package descriptor keys.
const (
	keyResources    = "resources"
	keyIdentifier   = "id"
	keyHomepage     = "homepage"
	keyVersion      = "version"
	keyContributors = "contributors"
	keyKeywords     = "keywords"
	keyImage        = "image"
	keyCreated      = "created"
)

var packageKeys = []string{
	keyResources, keyLicenses, keyProfile, keyName, keyIdentifier, keyTitle, keyDescription,
	keyHomepage, keyVersion, keySources, keyContributors, keyKeywords, keyImage, keyCreated,
}

// PackageVariant is implemented by *Package and every specialized package
// embedding it.
type PackageVariant interface {
	Base() *Package
	Verify(log *diag.Log) bool
	Serialize() map[string]any
}

// Package is the root of a descriptor: resources plus package metadata.
type Package struct {
	Resources    []ResourceVariant
	Licenses     []*License
	Profile      string
	Name         string
	Identifier   string
	Title        string
	Description  string
	Homepage     *url.URL
	Version      string
	Sources      []*Source
	Contributors []*Contributor
	Keywords     []string
	Image        *url.URL
	Created      *time.Time

	AdditionalProperties map[string]any
}

// NewPackage returns an empty package with the default profile.
func NewPackage() *Package { return &Package{Profile: DefaultProfile} }

// PackageProfile builds plain packages.
var PackageProfile = Profile[PackageVariant]{
	Name: PackageProfileName,
	Build: func(d map[string]any, log *diag.Log) (PackageVariant, bool) {
		p, ok := ParsePackage(d, log)
		if !ok {
			return nil, false
		}
		return p, true
	},
}

// ResourceRegistry returns the registry plain packages resolve resources with:
// plain resources by default, tabular ones by profile.
func ResourceRegistry() *Registry[ResourceVariant] {
	r := NewRegistry[ResourceVariant]()
	r.SetDefault(ResourceProfile)
	r.Add(ResourceProfile)
	r.Add(TabularResourceProfile)
	return r
}

// DefaultRegistry resolves plain packages by default and tabular packages by
// profile.
func DefaultRegistry() *Registry[PackageVariant] {
	r := NewRegistry[PackageVariant]()
	r.SetDefault(PackageProfile)
	r.Add(PackageProfile)
	r.Add(TabularPackageProfile)
	return r
}

func (p *Package) Base() *Package { return p }

// ParsePackage builds a package. It fails only when the descriptor's resource
// list is not a list of objects; resources that cannot be built are skipped.
func ParsePackage(d map[string]any, log *diag.Log) (*Package, bool) {
	m := descriptor.Map(d)
	p := NewPackage()
	if !p.parseResources(m, log, ResourceRegistry()) {
		return nil, false
	}
	p.parseMetadata(m, log)
	return p, true
}

func (p *Package) parseResources(m descriptor.Map, log *diag.Log, reg *Registry[ResourceVariant]) bool {
	if !m.Has(keyResources) {
		return true
	}
	rds, ok := m.Maps(keyResources)
	if !ok {
		log.Error(diag.BadInput(m[keyResources]), keyResources)
		return false
	}
	resourcesLog := log.Sub(keyResources)
	defer log.Merge(resourcesLog)
	for _, rd := range rds {
		if _, known := reg.Lookup(rd); !known {
			resourcesLog.Warn(diag.UnknownEnumeration(ProfileName(rd)), keyProfile)
			continue
		}
		if r, ok := reg.Resolve(rd, resourcesLog); ok {
			p.Resources = append(p.Resources, r)
		}
	}
	return true
}

// parseMetadata reads every package key except resources.
func (p *Package) parseMetadata(m descriptor.Map, log *diag.Log) {
	r := descriptor.Reader{M: m, Log: log}

	p.Licenses = parseList(r, keyLicenses, ParseLicense)
	if s, ok := m.String(keyProfile); ok {
		p.Profile = s
	} else {
		log.Warn(diag.Missing(), keyProfile)
	}
	p.Name = r.String(keyName)
	p.Identifier = r.String(keyIdentifier)
	p.Title = r.String(keyTitle)
	p.Description = r.String(keyDescription)
	p.Homepage = readURL(r, keyHomepage)
	p.Version = r.String(keyVersion)
	p.Sources = parseList(r, keySources, ParseSource)
	p.Contributors = parseList(r, keyContributors, ParseContributor)
	p.Keywords = r.Strings(keyKeywords)
	p.Image = readURL(r, keyImage)
	if s, ok := m.String(keyCreated); ok {
		if t, err := codec.TimeRFC3339().Decode(s); err == nil {
			p.Created = &t
		} else {
			log.Warn(diag.BadInput(s), keyCreated)
		}
	} else {
		r.String(keyCreated)
	}

	p.AdditionalProperties = additional(m, packageKeys...)
}

// Resource returns the first resource named name.
func (p *Package) Resource(name string) (ResourceVariant, bool) {
	for _, r := range p.Resources {
		if r.Base().Name == name {
			return r, true
		}
	}
	return nil, false
}

// EnsureIdentifier returns the package id, assigning a random UUID first when
// the package has none.
func (p *Package) EnsureIdentifier() string {
	if p.Identifier == "" {
		p.Identifier = uuid.NewString()
	}
	return p.Identifier
}

// Serialize renders the descriptor, omitting empty values and the default
// profile.
func (p *Package) Serialize() map[string]any {
	d := base(p.AdditionalProperties)
	putList(d, keyResources, p.Resources)
	putList(d, keyLicenses, p.Licenses)
	if p.Profile != DefaultProfile {
		putString(d, keyProfile, p.Profile)
	}
	putString(d, keyName, p.Name)
	putString(d, keyIdentifier, p.Identifier)
	putString(d, keyTitle, p.Title)
	putString(d, keyDescription, p.Description)
	putURL(d, keyHomepage, p.Homepage)
	putString(d, keyVersion, p.Version)
	putList(d, keySources, p.Sources)
	putList(d, keyContributors, p.Contributors)
	putStrings(d, keyKeywords, p.Keywords)
	putURL(d, keyImage, p.Image)
	if p.Created != nil {
		if s, err := codec.TimeRFC3339().Encode(*p.Created); err == nil {
			d[keyCreated] = s
		}
	}
	return d
}

// Verify requires at least one resource and verifies every owned entity.
// An empty profile, name or id is a warning.
func (p *Package) Verify(log *diag.Log) bool {
	mark := log.Len()
	valid := true
	if len(p.Resources) == 0 {
		valid = false
		log.Error(diag.Missing(), keyResources)
	}
	for _, ok := range []bool{
		verifyList(log, keyResources, p.Resources),
		verifyList(log, keyLicenses, p.Licenses),
		verifyList(log, keyContributors, p.Contributors),
		verifyList(log, keySources, p.Sources),
	} {
		valid = valid && ok
	}
	if p.Profile == "" {
		log.Warn(diag.Missing(), keyProfile)
	}
	if p.Name == "" {
		log.Warn(diag.Missing(), keyName)
	}
	if p.Identifier == "" {
		log.Warn(diag.Missing(), keyIdentifier)
	}
	return valid && log.CleanSince(mark)
}

// ResourceNames returns resource names in order.
func (p *Package) ResourceNames() []string {
	names := make([]string, 0, len(p.Resources))
	for _, r := range p.Resources {
		names = append(names, r.Base().Name)
	}
	return slices.Clip(names)
}
