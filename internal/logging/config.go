package logging

// Config defines the logging section of the settings file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the TRADE_OVERLAY_LOG_LEVEL environment variable.
	Level string `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	ReportCaller bool `yaml:"report_caller,omitempty" toml:"report_caller,omitempty" json:"report_caller,omitempty"`

	File   FileSinkConfig `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"`
	Format FormatConfig   `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset,omitempty" toml:"preset,omitempty" json:"preset,omitempty"`
	DisableTimestamp bool   `yaml:"disable_timestamp,omitempty" toml:"disable_timestamp,omitempty" json:"disable_timestamp,omitempty"`
	DisableComponent bool   `yaml:"disable_component,omitempty" toml:"disable_component,omitempty" json:"disable_component,omitempty"`
	// StructuredToStderr is "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr,omitempty" toml:"structured_to_stderr,omitempty" json:"structured_to_stderr,omitempty"`
}
