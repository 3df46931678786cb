package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes the first document of a YAML stream into the same tree
// shape DecodeJSON produces. yaml.v3 already rejects duplicate mapping keys.
func DecodeYAML(data []byte) (Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Tree{}, ErrNotObject
		}
		return Tree{}, fmt.Errorf("source: decode yaml: %w", err)
	}
	root := yamlAnyToStringMap(node)
	if root == nil {
		return Tree{}, ErrNotObject
	}
	return Tree{Root: root}, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	}
	return nil
}

// yamlNormalizeValue maps YAML scalars onto the JSON value kinds: integers and
// floats become json.Number, timestamps become RFC 3339 strings.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = yamlNormalizeValue(t[i])
		}
		return out
	case int:
		return json.Number(fmt.Sprint(t))
	case int64:
		return json.Number(fmt.Sprint(t))
	case uint64:
		return json.Number(fmt.Sprint(t))
	case float64:
		return json.Number(fmt.Sprint(t))
	case interface{ Format(string) string }:
		return t.Format("2006-01-02T15:04:05Z07:00")
	}
	return v
}
