package mocks

import (
	"context"

	"cwl_stats/internal/app"
)

// MockSink records every scoreboard published to it
type MockSink struct {
	SinkName     string
	PublishError error
	Published    []*app.Scoreboard
}

// NewMockSink creates a sink with the given name
func NewMockSink(name string) *MockSink {
	return &MockSink{SinkName: name}
}

func (m *MockSink) Name() string {
	return m.SinkName
}

func (m *MockSink) Publish(ctx context.Context, board *app.Scoreboard) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.Published = append(m.Published, board)
	return nil
}
