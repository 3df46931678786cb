package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reoring/datapackage/i18n"
)

// Load reads configuration from environment variables, applies defaults for
// unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		value := os.Getenv(envName)
		if alt := field.Tag.Get("envAlt"); value == "" && alt != "" {
			value = os.Getenv(alt)
		}
		if value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}
		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("DATAPACKAGE_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Log.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, fmt.Sprintf("DATAPACKAGE_LOG_FORMAT (%q) must be one of: text, json", c.Log.Format))
	}
	if !i18n.Supported(c.Check.Lang) {
		errs = append(errs, fmt.Sprintf("DATAPACKAGE_LANG (%q) must be one of: en, ja", c.Check.Lang))
	}
	validPolicies := map[string]bool{"ignore": true, "warn": true, "error": true}
	if !validPolicies[strings.ToLower(c.Check.DuplicateKeys)] {
		errs = append(errs, fmt.Sprintf("DATAPACKAGE_DUPLICATE_KEYS (%q) must be one of: ignore, warn, error", c.Check.DuplicateKeys))
	}
	if !validFormats[strings.ToLower(c.Check.Report)] {
		errs = append(errs, fmt.Sprintf("DATAPACKAGE_REPORT (%q) must be one of: text, json", c.Check.Report))
	}
	if c.Check.MaxDepth < 0 {
		errs = append(errs, "DATAPACKAGE_MAX_DEPTH must be non-negative")
	}
	if c.Check.MaxBytes < 0 {
		errs = append(errs, "DATAPACKAGE_MAX_BYTES must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String renders the settings for a debug log line.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Log: {Level: %q, Format: %q}, Check: {Lang: %q, Strict: %v, DuplicateKeys: %q, Report: %q, MaxDepth: %d, MaxBytes: %d}}",
		c.Log.Level, c.Log.Format, c.Check.Lang, c.Check.Strict, c.Check.DuplicateKeys, c.Check.Report, c.Check.MaxDepth, c.Check.MaxBytes)
}
