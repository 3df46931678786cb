// Package config loads CLI settings from environment variables, after an
// optional .env file has been applied by the caller.
package config

// Config holds all CLI configuration.
type Config struct {
	Log   LogConfig
	Check CheckConfig
}

// LogConfig controls operational logging on stderr.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `env:"DATAPACKAGE_LOG_LEVEL" default:"warn"`

	// Format is text or json (default: text)
	Format string `env:"DATAPACKAGE_LOG_FORMAT" default:"text"`
}

// CheckConfig controls how descriptors are loaded and reported.
type CheckConfig struct {
	// Lang selects the message catalogue (default: en)
	Lang string `env:"DATAPACKAGE_LANG" envAlt:"LANG_DATAPACKAGE" default:"en"`

	// Strict makes warnings fail validation.
	Strict bool `env:"DATAPACKAGE_STRICT" default:"false"`

	// DuplicateKeys is ignore, warn or error (default: warn)
	DuplicateKeys string `env:"DATAPACKAGE_DUPLICATE_KEYS" default:"warn"`

	// Report is the item output format, text or json (default: text)
	Report string `env:"DATAPACKAGE_REPORT" default:"text"`

	// MaxDepth bounds descriptor nesting; 0 disables the check.
	MaxDepth int `env:"DATAPACKAGE_MAX_DEPTH" default:"256"`

	// MaxBytes bounds descriptor file size; 0 disables the check.
	MaxBytes int64 `env:"DATAPACKAGE_MAX_BYTES" default:"67108864"`
}
