package source_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/datapackage/source"
)

func TestDecodeJSON_Object(t *testing.T) {
	tree, err := source.DecodeJSON([]byte(`{"name":"p","resources":[{"name":"r","bytes":10,"data":[[1,"a"],null]}]}`), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, "p", tree.Root["name"])

	res := tree.Root["resources"].([]any)[0].(map[string]any)
	assert.Equal(t, json.Number("10"), res["bytes"])
	data := res["data"].([]any)
	assert.Equal(t, []any{json.Number("1"), "a"}, data[0])
	assert.Nil(t, data[1])
	assert.Empty(t, tree.Duplicates)
}

func TestDecodeJSON_Duplicates(t *testing.T) {
	tree, err := source.DecodeJSON([]byte(`{"name":"a","resources":[{"name":"x","name":"y"}],"name":"b"}`), source.Options{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"resources", "0", "name"}, {"name"}}, tree.Duplicates)
	assert.Equal(t, "b", tree.Root["name"])
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`["not","an","object"]`), source.Options{})
	assert.ErrorIs(t, err, source.ErrNotObject)

	_, err = source.DecodeJSON([]byte(`{"name":`), source.Options{})
	assert.Error(t, err)

	_, err = source.DecodeJSON([]byte(`{"a":{"b":{"c":1}}}`), source.Options{MaxDepth: 2})
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	doc := []byte(`
name: quotations
created: 1985-04-12T23:20:50Z
resources:
  - name: quotation
    bytes: 42
    path: [a.csv, b.csv]
`)
	tree, err := source.DecodeYAML(doc)
	require.NoError(t, err)
	assert.Equal(t, "quotations", tree.Root["name"])
	assert.Equal(t, "1985-04-12T23:20:50Z", tree.Root["created"])

	res := tree.Root["resources"].([]any)[0].(map[string]any)
	assert.Equal(t, json.Number("42"), res["bytes"])
	assert.Equal(t, []any{"a.csv", "b.csv"}, res["path"])

	_, err = source.DecodeYAML([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, source.ErrNotObject)

	_, err = source.DecodeYAML([]byte("a: 1\na: 2\n"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, source.YAML, source.FormatOf("dir/datapackage.YAML"))
	assert.Equal(t, source.YAML, source.FormatOf("datapackage.yml"))
	assert.Equal(t, source.JSON, source.FormatOf("datapackage.json"))
	assert.Equal(t, source.JSON, source.FormatOf("datapackage"))
}

func TestMarshalJSON_SortedIndented(t *testing.T) {
	b, err := source.MarshalJSON(map[string]any{"name": "p", "bytes": json.Number("3"), "a": []any{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [],\n  \"bytes\": 3,\n  \"name\": \"p\"\n}\n", string(b))
}
