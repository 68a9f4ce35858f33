package mocks

import (
	"context"
	"fmt"

	"cwl_stats/internal/app"
)

// MockCocClient is a test double for the coc.Client
type MockCocClient struct {
	// Responses to return
	LeagueGroupResponse *app.LeagueGroup
	Wars                map[string]*app.War

	// Errors to return
	LeagueGroupError error
	WarErrors        map[string]error

	// Call tracking
	GetLeagueGroupCalled     bool
	GetLeagueGroupCalledWith string
	GetLeagueWarCalls        []string
}

// NewMockCocClient creates a new mock CoC client
func NewMockCocClient() *MockCocClient {
	return &MockCocClient{
		Wars:      make(map[string]*app.War),
		WarErrors: make(map[string]error),
	}
}

func (m *MockCocClient) GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error) {
	m.GetLeagueGroupCalled = true
	m.GetLeagueGroupCalledWith = clanTag
	return m.LeagueGroupResponse, m.LeagueGroupError
}

func (m *MockCocClient) GetLeagueWar(ctx context.Context, warTag string) (*app.War, error) {
	m.GetLeagueWarCalls = append(m.GetLeagueWarCalls, warTag)
	if err, ok := m.WarErrors[warTag]; ok {
		return nil, err
	}
	war, ok := m.Wars[warTag]
	if !ok {
		return nil, fmt.Errorf("mock: no war registered for %s", warTag)
	}
	return war, nil
}

// Reset clears all call tracking and responses
func (m *MockCocClient) Reset() {
	m.LeagueGroupResponse = nil
	m.Wars = make(map[string]*app.War)
	m.LeagueGroupError = nil
	m.WarErrors = make(map[string]error)
	m.GetLeagueGroupCalled = false
	m.GetLeagueGroupCalledWith = ""
	m.GetLeagueWarCalls = nil
}
