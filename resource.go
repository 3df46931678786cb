package datapackage

import (
	"net/url"
	"slices"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Resource descriptor keys.
const (
	keyDescription = "description"
	keyFormat      = "format"
	keyMediaType   = "mediatype"
	keyEncoding    = "encoding"
	keyBytes       = "bytes"
	keyHash        = "hash"
	keySources     = "sources"
	keyLicenses    = "licenses"
	keyData        = "data"
	keySchema      = "schema"
)

var resourceKeys = []string{
	keyName, keyProfile, keyTitle, keyDescription, keyFormat, keyMediaType, keyEncoding,
	keyBytes, keyHash, keySources, keyLicenses, keyPath, keyData, keySchema,
}

// DefaultEncoding is the character encoding assumed when none is declared.
const DefaultEncoding = "UTF-8"

// ResourceVariant is implemented by *Resource and every specialized resource
// embedding it.
type ResourceVariant interface {
	Base() *Resource
	Verify(log *diag.Log) bool
	Serialize() map[string]any
}

// Resource is one data unit of a package: external files named by Paths or
// inline Data, never both.
type Resource struct {
	Name        string
	Profile     string
	Title       string
	Description string
	Format      string
	MediaType   string
	Encoding    string // empty means DefaultEncoding
	Bytes       *uint64
	Hash        string
	Sources     []*Source
	Licenses    []*License
	Paths       []*url.URL
	Data        any
	// RawSchema is the undecoded schema of a plain resource.
	RawSchema any

	AdditionalProperties map[string]any
}

// NewResource returns a resource with the default profile.
func NewResource(name string) *Resource {
	return &Resource{Name: name, Profile: DefaultProfile}
}

// ResourceProfile builds plain resources.
var ResourceProfile = Profile[ResourceVariant]{
	Name: ResourceProfileName,
	Build: func(d map[string]any, log *diag.Log) (ResourceVariant, bool) {
		r, ok := ParseResource(d, log)
		if !ok {
			return nil, false
		}
		return r, true
	},
}

func (r *Resource) Base() *Resource { return r }

// EffectiveEncoding returns Encoding or DefaultEncoding.
func (r *Resource) EffectiveEncoding() string {
	if r.Encoding == "" {
		return DefaultEncoding
	}
	return r.Encoding
}

// ParseResource requires a name. Everything else is optional.
func ParseResource(d map[string]any, log *diag.Log) (*Resource, bool) {
	return parseResource(descriptor.Map(d), log)
}

// parseResource reads the shared resource keys. ownKeys are keys a variant
// reads itself and which are therefore not additional properties.
func parseResource(m descriptor.Map, log *diag.Log, ownKeys ...string) (*Resource, bool) {
	name, ok := m.String(keyName)
	if !ok {
		if m.Has(keyName) && m[keyName] != nil {
			log.Error(diag.BadInput(m[keyName]), keyName)
		} else {
			log.Error(diag.Missing(), keyName)
		}
		return nil, false
	}
	r := NewResource(name)
	rd := descriptor.Reader{M: m, Log: log}

	if p, ok := m.String(keyProfile); ok {
		r.Profile = p
	} else {
		log.Warn(diag.Missing(), keyProfile)
	}
	r.Title = rd.String(keyTitle)
	r.Description = rd.String(keyDescription)
	r.Format = rd.String(keyFormat)
	r.MediaType = rd.String(keyMediaType)
	r.Encoding = rd.String(keyEncoding)
	if n, ok := rd.Uint(keyBytes); ok {
		r.Bytes = &n
	}
	r.Hash = rd.String(keyHash)
	r.Sources = parseList(rd, keySources, ParseSource)
	r.Licenses = parseList(rd, keyLicenses, ParseLicense)

	for _, p := range rd.Strings(keyPath) {
		if u, ok := descriptor.URL(p); ok {
			r.Paths = append(r.Paths, u)
		} else {
			log.Warn(diag.BadInput(p), keyPath)
		}
	}
	r.Data = m[keyData]
	r.RawSchema = m[keySchema]

	r.AdditionalProperties = additional(m, append(slices.Clip(resourceKeys), ownKeys...)...)
	return r, true
}

// Serialize renders the descriptor. The default profile is not emitted.
func (r *Resource) Serialize() map[string]any {
	d := base(r.AdditionalProperties)
	d[keyName] = r.Name
	if r.Profile != DefaultProfile {
		putString(d, keyProfile, r.Profile)
	}
	putString(d, keyTitle, r.Title)
	putString(d, keyDescription, r.Description)
	putString(d, keyFormat, r.Format)
	putString(d, keyMediaType, r.MediaType)
	putString(d, keyEncoding, r.Encoding)
	if r.Bytes != nil {
		d[keyBytes] = *r.Bytes
	}
	putString(d, keyHash, r.Hash)
	putList(d, keySources, r.Sources)
	putList(d, keyLicenses, r.Licenses)
	if len(r.Paths) > 0 {
		paths := make([]string, len(r.Paths))
		for i, p := range r.Paths {
			paths[i] = p.String()
		}
		d[keyPath] = paths
	}
	if r.Data != nil {
		d[keyData] = r.Data
	}
	if r.RawSchema != nil {
		d[keySchema] = r.RawSchema
	}
	return d
}

// Verify requires exactly one of Paths and Data, and verifies sources and
// licenses.
func (r *Resource) Verify(log *diag.Log) bool {
	mark := log.Len()
	valid := true

	missingBoth := len(r.Paths) == 0 && r.Data == nil
	hasBoth := len(r.Paths) > 0 && r.Data != nil
	if missingBoth || hasBoth {
		valid = false
		if missingBoth {
			log.Error(diag.Missing(), keyPath)
			log.Error(diag.Missing(), keyData)
		}
		log.Error(diag.Conflicting(keyData), keyPath)
	}
	if r.Profile == "" {
		log.Warn(diag.Missing(), keyProfile)
	}

	if !verifyList(log, keySources, r.Sources) {
		valid = false
	}
	if !verifyList(log, keyLicenses, r.Licenses) {
		valid = false
	}
	return valid && log.CleanSince(mark)
}
