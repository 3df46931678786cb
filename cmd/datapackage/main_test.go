package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/datapackage/i18n"
)

func fixture(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String()
}

func TestRun_MissingPath(t *testing.T) {
	code, out := runCLI(t)
	assert.Equal(t, 1, code)
	assert.Equal(t, "datapackage version "+Version+"\nMissing package path argument.\n", out)
}

func TestRun_ValidPackage(t *testing.T) {
	code, out := runCLI(t, fixture("package", "exemplar"))
	assert.Equal(t, 0, code, out)
	assert.True(t, strings.HasSuffix(out, "Package okay.\n"), out)
}

func TestRun_TabularPackage(t *testing.T) {
	code, out := runCLI(t, "-strict", fixture("tabular", "exemplar"))
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "Package okay.")
}

func TestRun_StrictFailsOnWarnings(t *testing.T) {
	code, out := runCLI(t, fixture("package", "minimal"))
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "Warning: Missing value at 'profile'.")

	code, out = runCLI(t, "-strict", fixture("package", "minimal"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Package failed to validate.")
}

func TestRun_LoadFailure(t *testing.T) {
	code, out := runCLI(t, fixture("tabular", "unresolved"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: Conflict between 'resources.schema.foreignKeys.reference.fields' and 'resources.schema.fields'.")
	assert.True(t, strings.HasSuffix(out, "Package failed to load.\n"), out)
}

func TestRun_JSONReport(t *testing.T) {
	code, out := runCLI(t, "-report", "json", fixture("package", "duplicate"))
	assert.Equal(t, 0, code, out)

	var records []itemRecord
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var rec itemRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	require.NotEmpty(t, records)
	assert.Equal(t, itemRecord{
		Severity: "warning",
		Kind:     "conflicting",
		Path:     "name",
		Pointer:  "/name",
		Message:  "Conflict between 'name' and 'name'.",
	}, records[0])
}

func TestRun_DuplicatesAsErrors(t *testing.T) {
	code, out := runCLI(t, "-duplicates", "error", fixture("package", "duplicate"))
	assert.Equal(t, 1, code, out)
	assert.Contains(t, out, "Error: Conflict between 'name' and 'name'.")
	assert.True(t, strings.HasSuffix(out, "Package failed to load.\n"), out)
}

func TestRun_StrictCountsLoadWarnings(t *testing.T) {
	code, out := runCLI(t, fixture("package", "duplicate"))
	assert.Equal(t, 0, code, out)

	code, out = runCLI(t, "-strict", fixture("package", "duplicate"))
	assert.Equal(t, 1, code, out)
	assert.Contains(t, out, "Warning: Conflict between 'name' and 'name'.")
	assert.True(t, strings.HasSuffix(out, "Package failed to validate.\n"), out)
}

func TestRun_UnknownFieldTypeFailsLoad(t *testing.T) {
	dir := t.TempDir()
	descriptor := `{
  "name": "p",
  "id": "p",
  "profile": "tabular-data-package",
  "resources": [{
    "name": "r",
    "profile": "tabular-data-resource",
    "data": [],
    "schema": {"fields": [{"name": "a", "type": "foo"}]}
  }]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "datapackage.json"), []byte(descriptor), 0o644))

	code, out := runCLI(t, dir)
	assert.Equal(t, 1, code, out)
	assert.Contains(t, out, "Error: Unknown enumeration 'foo' at 'resources.schema.fields.type'.")
	assert.NotContains(t, out, "Package okay.")
	assert.True(t, strings.HasSuffix(out, "Package failed to load.\n"), out)
}

func TestRun_Japanese(t *testing.T) {
	code, out := runCLI(t, "-lang", "ja", fixture("package", "minimal"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "警告: 'profile' の値がありません。")
}

func TestRun_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	code, out := runCLI(t, "-assign-id", fixture("package", "minimal"), dir)
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "Exporting to '"+dir+"'\nPackage exported.\n")

	data, err := os.ReadFile(filepath.Join(dir, "datapackage.json"))
	require.NoError(t, err)
	var d map[string]any
	require.NoError(t, json.Unmarshal(data, &d))
	_, err = uuid.Parse(d["id"].(string))
	assert.NoError(t, err)

	code, out = runCLI(t, dir)
	assert.Equal(t, 0, code, out)
}

func TestRun_BadFlags(t *testing.T) {
	code, _ := runCLI(t, "-lang", "fr", fixture("package", "minimal"))
	assert.Equal(t, 2, code)
	code, _ = runCLI(t, "-duplicates", "explode", fixture("package", "minimal"))
	assert.Equal(t, 2, code)
	code, _ = runCLI(t, "-nope")
	assert.Equal(t, 2, code)
}
