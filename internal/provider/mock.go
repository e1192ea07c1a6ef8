package provider

import (
	"context"
	"sync"
)

// Call records one Complete invocation on a Mock.
type Call struct {
	Prompt  string
	Options Options
}

// Mock is a scripted Provider. Responses and errors are consumed in order;
// once exhausted the last entry repeats.
type Mock struct {
	mu        sync.Mutex
	Responses []string
	Errors    []error
	calls     []Call
}

func NewMock(responses ...string) *Mock {
	return &Mock{Responses: responses}
}

// NewFailingMock returns a Mock whose every call fails with err.
func NewFailingMock(err error) *Mock {
	return &Mock{Errors: []error{err}}
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Model() string {
	return "mock-model"
}

func (m *Mock) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.calls)
	m.calls = append(m.calls, Call{Prompt: prompt, Options: opts})

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(m.Errors) > 0 {
		if err := m.Errors[min(i, len(m.Errors)-1)]; err != nil {
			return "", err
		}
	}
	if len(m.Responses) == 0 {
		return "", ErrEmptyResponse
	}
	return m.Responses[min(i, len(m.Responses)-1)], nil
}

// Calls returns a copy of the recorded invocations.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent invocation.
func (m *Mock) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}
