package datapackage

import (
	"net/url"

	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Shared leaf descriptor keys.
const (
	keyTitle        = "title"
	keyPath         = "path"
	keyEmail        = "email"
	keyRole         = "role"
	keyOrganization = "organization"
	keyName         = "name"
)

// ContributorRole is the closed set of contributor roles.
type ContributorRole string

const (
	RoleAuthor      ContributorRole = "author"
	RolePublisher   ContributorRole = "publisher"
	RoleMaintainer  ContributorRole = "maintainer"
	RoleWrangler    ContributorRole = "wrangler"
	RoleContributor ContributorRole = "contributor"
)

func parseRole(s string) (ContributorRole, bool) {
	switch r := ContributorRole(s); r {
	case RoleAuthor, RolePublisher, RoleMaintainer, RoleWrangler, RoleContributor:
		return r, true
	}
	return "", false
}

// Contributor is a person or organization credited by a package.
type Contributor struct {
	Title        string
	Path         *url.URL
	Email        string
	Role         ContributorRole // empty means not declared
	Organization string

	AdditionalProperties map[string]any
}

// NewContributor returns a contributor with the given title and no role.
func NewContributor(title string) *Contributor { return &Contributor{Title: title} }

// EffectiveRole returns Role, or RoleContributor when none was declared.
func (c *Contributor) EffectiveRole() ContributorRole {
	if c.Role == "" {
		return RoleContributor
	}
	return c.Role
}

// ParseContributor requires a title. An unknown role is an error but the
// contributor is still built.
func ParseContributor(d map[string]any, log *diag.Log) (*Contributor, bool) {
	m := descriptor.Map(d)
	title, ok := m.String(keyTitle)
	if !ok {
		log.Error(diag.Missing(), keyTitle)
		return nil, false
	}
	c := NewContributor(title)
	r := descriptor.Reader{M: m, Log: log}
	c.Path = readURL(r, keyPath)
	c.Email = r.String(keyEmail)
	if s := r.String(keyRole); s != "" {
		if role, ok := parseRole(s); ok {
			c.Role = role
		} else {
			log.Error(diag.UnknownEnumeration(s), keyRole)
		}
	}
	c.Organization = r.String(keyOrganization)
	c.AdditionalProperties = additional(m, keyTitle, keyPath, keyEmail, keyRole, keyOrganization)
	return c, true
}

func (c *Contributor) Serialize() map[string]any {
	d := base(c.AdditionalProperties)
	d[keyTitle] = c.Title
	putURL(d, keyPath, c.Path)
	putString(d, keyEmail, c.Email)
	putString(d, keyRole, string(c.Role))
	putString(d, keyOrganization, c.Organization)
	return d
}

// Verify has nothing to check beyond construction.
func (c *Contributor) Verify(log *diag.Log) bool { return true }
