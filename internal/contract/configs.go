package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/roadworks/tachoscan/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 28
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultHTTPAddr    = ":3001"
	DefaultDecoderName = "dddparser"
)

// DateTimeFormat is the full timestamp representation accepted on top of the
// plain YYYY-MM-DD date format.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	CardPath  string
	StartDate string // YYYY-MM-DD, empty means open bound
	EndDate   string // YYYY-MM-DD, empty means open bound

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	DecoderPath string

	HTTPAddr  string
	UploadDir string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored severity labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	CardPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Decoder        string `mapstructure:"decoder"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Fields from serveCmd.Flags() ---
	Addr      string `mapstructure:"addr"`
	UploadDir string `mapstructure:"upload-dir"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-date related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.CardPath = input.CardPathStr
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UploadDir = input.UploadDir

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 3. Decoder and HTTP ---
	cfg.DecoderPath = strings.TrimSpace(input.Decoder)
	if cfg.DecoderPath == "" {
		cfg.DecoderPath = DefaultDecoderName
	}
	cfg.HTTPAddr = strings.TrimSpace(input.Addr)
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}

	return nil
}

// processDateRange normalizes the optional start/end bounds to YYYY-MM-DD.
// Full RFC3339 timestamps are accepted and truncated to their calendar date.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	normalize := func(s string) (string, error) {
		if s == "" {
			return "", nil
		}
		if t, err := time.Parse(schema.DateFormat, s); err == nil {
			return t.Format(schema.DateFormat), nil
		}
		if t, err := time.Parse(DateTimeFormat, s); err == nil {
			return t.Format(schema.DateFormat), nil
		}
		return "", fmt.Errorf("invalid date '%s'. Expected YYYY-MM-DD or ISO8601", s)
	}

	start, err := normalize(input.Start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	cfg.StartDate = start

	end, err := normalize(input.End)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	cfg.EndDate = end

	if cfg.StartDate != "" && cfg.EndDate != "" && cfg.StartDate > cfg.EndDate {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartDate, cfg.EndDate)
	}
	return nil
}

// validateBackendConfig validates the report store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.StoreBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}
