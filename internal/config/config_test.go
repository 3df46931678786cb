package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "en", cfg.Check.Lang)
	assert.False(t, cfg.Check.Strict)
	assert.Equal(t, "warn", cfg.Check.DuplicateKeys)
	assert.Equal(t, "text", cfg.Check.Report)
	assert.Equal(t, 256, cfg.Check.MaxDepth)
	assert.EqualValues(t, 64<<20, cfg.Check.MaxBytes)
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("DATAPACKAGE_LOG_LEVEL", "debug")
	t.Setenv("DATAPACKAGE_LOG_FORMAT", "json")
	t.Setenv("DATAPACKAGE_LANG", "ja")
	t.Setenv("DATAPACKAGE_STRICT", "true")
	t.Setenv("DATAPACKAGE_DUPLICATE_KEYS", "error")
	t.Setenv("DATAPACKAGE_MAX_DEPTH", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "ja", cfg.Check.Lang)
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, "error", cfg.Check.DuplicateKeys)
	assert.Equal(t, 8, cfg.Check.MaxDepth)
}

func TestLoad_AlternateLangVariable(t *testing.T) {
	t.Setenv("LANG_DATAPACKAGE", "ja")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Check.Lang)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad bool", "DATAPACKAGE_STRICT", "maybe", "invalid value for DATAPACKAGE_STRICT"},
		{"bad int", "DATAPACKAGE_MAX_DEPTH", "deep", "invalid value for DATAPACKAGE_MAX_DEPTH"},
		{"bad level", "DATAPACKAGE_LOG_LEVEL", "loud", "DATAPACKAGE_LOG_LEVEL"},
		{"bad lang", "DATAPACKAGE_LANG", "fr", "DATAPACKAGE_LANG"},
		{"bad policy", "DATAPACKAGE_DUPLICATE_KEYS", "panic", "DATAPACKAGE_DUPLICATE_KEYS"},
		{"bad report", "DATAPACKAGE_REPORT", "xml", "DATAPACKAGE_REPORT"},
		{"negative depth", "DATAPACKAGE_MAX_DEPTH", "-1", "DATAPACKAGE_MAX_DEPTH must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Log:   LogConfig{Level: "x", Format: "y"},
		Check: CheckConfig{Lang: "en", DuplicateKeys: "warn", Report: "text"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATAPACKAGE_LOG_LEVEL")
	assert.Contains(t, err.Error(), "DATAPACKAGE_LOG_FORMAT")
}

func TestString(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "info", Format: "text"}, Check: CheckConfig{Lang: "en"}}
	assert.Contains(t, cfg.String(), `Level: "info"`)
}
