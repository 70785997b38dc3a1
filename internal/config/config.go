// =============================================================================
// Journal Order Builder - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file drives:
//   - Directory locations (uploads, output artifacts)
//   - HTTP server settings
//   - The journal pipeline constants (candidate account, advertisement
//     marker code, excluded summary accounts, lookup URL)
//   - The secondary CSV-filter feature literals
//   - Session store eviction policy
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Self-contained: a missing config file still yields a working default
//     configuration
//   - Validated: directories are created on load, numeric settings checked
//   - Explicit: every accounting sentinel lives here, not in code
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
// This is loaded from the main config.yaml file.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// UploadDir is the directory where uploaded CSV files are written
	// before processing. Files placed here are transient; they are removed
	// best-effort once processing completes.
	// Default: "./uploads"
	UploadDir string `yaml:"upload_dir"`

	// OutputDir is the directory where generated workbook artifacts are
	// placed. Artifact names carry a uniqueness salt so concurrent uploads
	// never collide.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// SERVER SETTINGS
	// =========================================================================

	// Server contains the HTTP surface settings.
	Server ServerSettings `yaml:"server"`

	// =========================================================================
	// SESSION SETTINGS
	// =========================================================================

	// Session contains the result-store eviction settings.
	Session SessionSettings `yaml:"session"`

	// =========================================================================
	// PIPELINE SETTINGS
	// =========================================================================

	// Journal contains the journal pipeline constants.
	Journal JournalSettings `yaml:"journal"`

	// Filter contains the secondary CSV-filter feature literals.
	Filter FilterSettings `yaml:"filter"`
}

// ServerSettings contains settings for the HTTP surface.
type ServerSettings struct {
	// Addr is the listen address for the HTTP server.
	// Default: ":5001"
	Addr string `yaml:"addr"`

	// MaxUploadMB is the maximum accepted upload size in megabytes.
	// Uploads larger than this are rejected before processing.
	// Default: 16
	MaxUploadMB int64 `yaml:"max_upload_mb"`
}

// SessionSettings contains the result-store eviction settings. Entries
// expire so abandoned sessions do not accumulate for the process lifetime.
type SessionSettings struct {
	// TTLMinutes is how long a processing result stays retrievable.
	// Default: 30
	TTLMinutes int `yaml:"ttl_minutes"`

	// CleanupMinutes is the interval between eviction sweeps.
	// Default: 10
	CleanupMinutes int `yaml:"cleanup_minutes"`
}

// JournalSettings contains the journal pipeline constants.
//
// These values come from the ticketing system's chart of accounts. They are
// configuration rather than code so a new season's account plan does not
// require a rebuild.
type JournalSettings struct {
	// CandidateAccount is the forward-filled debit-account reference that
	// selects rows for the advertisement split. Rows whose filled key does
	// not equal this value fall into the "rest" bucket.
	// Default: "79991"
	CandidateAccount string `yaml:"candidate_account"`

	// AdMarkerCode is the credit-account code that marks a segment as
	// advertisement revenue. If any row of a segment carries this code the
	// whole segment is classified as advertisement.
	// Default: 4118
	AdMarkerCode int64 `yaml:"ad_marker_code"`

	// ExcludedSummaryAccounts are credit accounts that never appear as
	// their own revenue summary rows. Their amounts still count toward the
	// grand total.
	// Default: [70001, 70100]
	ExcludedSummaryAccounts []int64 `yaml:"excluded_summary_accounts"`

	// LookupBaseURL is the ticketing back office URL used to build
	// per-transaction lookup links in the problematic-transactions report.
	// The transaction id is appended as "?id=<transaction id>".
	// Default: "https://tickets.hapoel.co.il/Transaction2/Details"
	LookupBaseURL string `yaml:"lookup_base_url"`

	// OtherPaymentLabel is the product name whose rows are dropped from
	// the "rest" bucket during normalization.
	// Default: "Other Payment"
	OtherPaymentLabel string `yaml:"other_payment_label"`
}

// FilterSettings contains the literals for the secondary CSV-filter
// feature. Each literal corresponds to one boolean toggle.
type FilterSettings struct {
	// StatusValue is the required Status column value.
	// Default: "Active"
	StatusValue string `yaml:"status_value"`

	// TypeValue is the required Type column value.
	// Default: "Sale"
	TypeValue string `yaml:"type_value"`

	// PaymentTypeValue is the required Payment type column value.
	// Default: "PayType_External payment cards"
	PaymentTypeValue string `yaml:"payment_type_value"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file exists but cannot be read or parsed, or if the
//     resulting configuration is invalid.
//
// A missing file is not an error: the defaults describe a complete working
// configuration, so first runs need no setup.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Fall through to defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem. Used by tests and by callers that construct the pipeline
// directly.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5001"
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 16
	}

	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Session.CleanupMinutes == 0 {
		cfg.Session.CleanupMinutes = 10
	}

	if cfg.Journal.CandidateAccount == "" {
		cfg.Journal.CandidateAccount = "79991"
	}
	if cfg.Journal.AdMarkerCode == 0 {
		cfg.Journal.AdMarkerCode = 4118
	}
	if len(cfg.Journal.ExcludedSummaryAccounts) == 0 {
		cfg.Journal.ExcludedSummaryAccounts = []int64{70001, 70100}
	}
	if cfg.Journal.LookupBaseURL == "" {
		cfg.Journal.LookupBaseURL = "https://tickets.hapoel.co.il/Transaction2/Details"
	}
	if cfg.Journal.OtherPaymentLabel == "" {
		cfg.Journal.OtherPaymentLabel = "Other Payment"
	}

	if cfg.Filter.StatusValue == "" {
		cfg.Filter.StatusValue = "Active"
	}
	if cfg.Filter.TypeValue == "" {
		cfg.Filter.TypeValue = "Sale"
	}
	if cfg.Filter.PaymentTypeValue == "" {
		cfg.Filter.PaymentTypeValue = "PayType_External payment cards"
	}
}

// validate validates the configuration and creates missing directories.
func validate(cfg *Config) error {
	dirs := []string{
		cfg.UploadDir,
		cfg.OutputDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	if cfg.Server.MaxUploadMB < 0 {
		return fmt.Errorf("max_upload_mb must not be negative")
	}
	if cfg.Session.TTLMinutes < 0 || cfg.Session.CleanupMinutes < 0 {
		return fmt.Errorf("session ttl_minutes and cleanup_minutes must not be negative")
	}

	return nil
}
