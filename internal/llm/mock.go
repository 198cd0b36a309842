package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements Client for tests. Responses are played back in order;
// the last one repeats once the queue is exhausted.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	prompts   []string
}

// NewMockClient creates a mock client with scripted responses.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// NewFailingMockClient creates a mock client that always returns err.
func NewFailingMockClient(err error) *MockClient {
	return &MockClient{err: err}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mock client has no scripted responses")
	}

	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func (m *MockClient) Model() string { return "mock" }

// Calls returns how many completions were requested.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt, or "" when none were made.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
