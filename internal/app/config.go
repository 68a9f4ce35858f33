package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL         = "https://api.clashofclans.com/v1/"
	DefaultRequestDelay    = 1 * time.Second
	DefaultCredentialsFile = "credentials.json"
	DefaultBigQueryTable   = "cwl_scores"
	DefaultDeployKeyFile   = "deploy.pem"
)

// Config holds application configuration
type Config struct {
	APIKey       string
	ClanTag      string
	BaseURL      string
	RequestDelay time.Duration

	// Google Sheets publishing, disabled when SpreadsheetID is empty
	SpreadsheetID   string
	CredentialsFile string

	// BigQuery export, disabled unless project and dataset are set
	BigQueryProject string
	BigQueryDataset string
	BigQueryTable   string

	// Report upload target in user@host:path form
	DeployURL     string
	DeployKeyFile string

	UpdateInterval time.Duration
}

// SheetsEnabled reports whether a spreadsheet has been configured.
func (c *Config) SheetsEnabled() bool {
	return c.SpreadsheetID != ""
}

// BigQueryEnabled reports whether a BigQuery destination has been configured.
func (c *Config) BigQueryEnabled() bool {
	return c.BigQueryProject != "" && c.BigQueryDataset != ""
}

// DeployEnabled reports whether a report upload target has been configured.
func (c *Config) DeployEnabled() bool {
	return c.DeployURL != ""
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	zerolog.SetGlobalLevel(ParseLogLevel(os.Getenv("LOGLEVEL"), os.Getenv("ENV") == "production"))

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// ParseLogLevel maps a LOGLEVEL value onto a zerolog level. An empty value
// falls back to warn in production and info elsewhere.
func ParseLogLevel(value string, production bool) zerolog.Level {
	levelStr := strings.ToLower(strings.TrimSpace(value))
	switch levelStr {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	case "":
		if production {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	default:
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
		return zerolog.InfoLevel
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("COC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("COC_API_KEY environment variable is required")
	}

	clanTag := NormalizeTag(os.Getenv("CLAN_TAG"))
	if clanTag == "" {
		return nil, fmt.Errorf("CLAN_TAG environment variable is required")
	}

	baseURL := os.Getenv("COC_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	requestDelay := DefaultRequestDelay
	if raw := os.Getenv("REQUEST_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_DELAY %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("REQUEST_DELAY must not be negative, got %s", raw)
		}
		requestDelay = d
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = DefaultCredentialsFile
	}

	bigQueryTable := os.Getenv("BIGQUERY_TABLE")
	if bigQueryTable == "" {
		bigQueryTable = DefaultBigQueryTable
	}

	deployKeyFile := os.Getenv("DEPLOY_KEY_FILE")
	if deployKeyFile == "" {
		deployKeyFile = DefaultDeployKeyFile
	}

	return &Config{
		APIKey:          apiKey,
		ClanTag:         clanTag,
		BaseURL:         baseURL,
		RequestDelay:    requestDelay,
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: credentialsFile,
		BigQueryProject: os.Getenv("BIGQUERY_PROJECT"),
		BigQueryDataset: os.Getenv("BIGQUERY_DATASET"),
		BigQueryTable:   bigQueryTable,
		DeployURL:       os.Getenv("DEPLOY_URL"),
		DeployKeyFile:   deployKeyFile,
	}, nil
}

// NormalizeTag upper-cases a player or clan tag and ensures the leading '#'.
// Returns "" for blank input.
func NormalizeTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" || tag == "#" {
		return ""
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}
