package config

import "time"

// Timeout and pacing constants. Failures are never retried: a single failed
// request ends the run.
const (
	// Clash of Clans API requests
	APIRequestTimeout = 30 * time.Second
	APIRequestDelay   = 1 * time.Second
	APIRequestBurst   = 1

	// Google Sheets writes
	SheetWriteTimeout = 30 * time.Second

	// BigQuery streaming inserts
	BigQueryInsertTimeout = 60 * time.Second

	// SSH report upload
	DeployTimeout = 30 * time.Second
)

// PacingConfig defines how an outbound call is bounded in time
type PacingConfig struct {
	// Timeout bounds a single call
	Timeout time.Duration
	// Delay is the minimum spacing between consecutive calls; zero disables pacing
	Delay time.Duration
	// Burst is how many calls may be made back to back before Delay applies
	Burst int
}

// ResilienceConfig contains the pacing for every external collaborator
type ResilienceConfig struct {
	APIRequest     PacingConfig
	SheetWrite     PacingConfig
	BigQueryInsert PacingConfig
	Deploy         PacingConfig
}

// DefaultResilienceConfig matches the Clash of Clans API rate expectations
var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: PacingConfig{
		Timeout: APIRequestTimeout,
		Delay:   APIRequestDelay,
		Burst:   APIRequestBurst,
	},
	SheetWrite: PacingConfig{
		Timeout: SheetWriteTimeout,
	},
	BigQueryInsert: PacingConfig{
		Timeout: BigQueryInsertTimeout,
	},
	Deploy: PacingConfig{
		Timeout: DeployTimeout,
	},
}

// WithAPIDelay returns a copy of the config with the API request delay replaced
func (c ResilienceConfig) WithAPIDelay(delay time.Duration) ResilienceConfig {
	c.APIRequest.Delay = delay
	return c
}
