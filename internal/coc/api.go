package coc

import (
	"context"

	"cwl_stats/internal/app"
)

// ClashAPI defines the interface for interacting with the Clash of Clans API
// This separates infrastructure concerns from business logic
type ClashAPI interface {
	// Core API endpoints
	GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error)
	GetLeagueWar(ctx context.Context, warTag string) (*app.War, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}

var _ ClashAPI = (*Client)(nil)
