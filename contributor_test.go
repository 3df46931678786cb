package datapackage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/datapackage"
	"github.com/reoring/datapackage/diag"
)

func TestParseContributor(t *testing.T) {
	log := diag.New()
	c, ok := datapackage.ParseContributor(map[string]any{
		"title": "First Last",
		"role":  "wrangler",
		"extra": true,
	}, log)
	require.True(t, ok)
	assert.Equal(t, datapackage.RoleWrangler, c.Role)
	assert.Equal(t, map[string]any{"extra": true}, c.AdditionalProperties)
	assert.Equal(t, map[string]any{"title": "First Last", "role": "wrangler", "extra": true}, c.Serialize())
}

func TestParseContributor_RequiresTitle(t *testing.T) {
	log := diag.New("contributors")
	_, ok := datapackage.ParseContributor(map[string]any{"email": "a@b"}, log)
	assert.False(t, ok)
	assert.Equal(t, []string{"contributors.title"}, errorPaths(log))
}

func TestParseContributor_UnknownRole(t *testing.T) {
	log := diag.New()
	c, ok := datapackage.ParseContributor(map[string]any{"title": "t", "role": "owner"}, log)
	require.True(t, ok)
	assert.Empty(t, c.Role)
	assert.Equal(t, datapackage.RoleContributor, c.EffectiveRole())
	require.Len(t, log.Items(), 1)
	assert.True(t, log.Items()[0].Entry.Equal(diag.UnknownEnumeration("owner")))
	assert.Equal(t, diag.Error, log.Items()[0].Severity)
}

func TestContributor_UndeclaredRoleNotSerialized(t *testing.T) {
	c := datapackage.NewContributor("t")
	assert.Equal(t, datapackage.RoleContributor, c.EffectiveRole())
	assert.Equal(t, map[string]any{"title": "t"}, c.Serialize())
	assert.True(t, c.Verify(diag.New()))
}

func TestParseLicense(t *testing.T) {
	log := diag.New()
	l, ok := datapackage.ParseLicense(map[string]any{"path": "https://opensource.org/licenses/MIT"}, log)
	require.True(t, ok)
	assert.True(t, l.Verify(diag.New()))
	assert.Equal(t, map[string]any{"path": "https://opensource.org/licenses/MIT"}, l.Serialize())

	l, ok = datapackage.ParseLicense(map[string]any{}, log)
	require.True(t, ok)
	vlog := diag.New()
	assert.False(t, l.Verify(vlog))
	assert.Equal(t, []string{"name", "path"}, errorPaths(vlog))
}

func TestParseSource(t *testing.T) {
	log := diag.New()
	s, ok := datapackage.ParseSource(map[string]any{"title": "Voltaire", "email": "me@example.com"}, log)
	require.True(t, ok)
	assert.Nil(t, s.Path)
	assert.Equal(t, map[string]any{"title": "Voltaire", "email": "me@example.com"}, s.Serialize())

	_, ok = datapackage.ParseSource(map[string]any{"path": "x"}, log)
	assert.False(t, ok)
	assert.Equal(t, []string{"title"}, errorPaths(log))
}
