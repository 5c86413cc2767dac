package llm

import (
	"context"
	"sync"
)

// ScriptedCall records one Complete invocation.
type ScriptedCall struct {
	System string
	User   string
}

// ScriptedClient replays canned completions in order, then repeats the last one.
// It is meant for tests and local runs without credentials.
type ScriptedClient struct {
	mu        sync.Mutex
	responses []Completion
	err       error
	calls     []ScriptedCall
}

func NewScriptedClient(responses ...Completion) *ScriptedClient {
	return &ScriptedClient{responses: responses}
}

// NewFailingClient returns a ScriptedClient whose every call fails with err.
func NewFailingClient(err error) *ScriptedClient {
	return &ScriptedClient{err: err}
}

func (s *ScriptedClient) Complete(ctx context.Context, system, user string) (Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, ScriptedCall{System: system, User: user})

	if err := ctx.Err(); err != nil {
		return Completion{}, err
	}
	if s.err != nil {
		return Completion{}, s.err
	}
	if len(s.responses) == 0 {
		return Completion{}, ErrDisabled
	}

	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func (s *ScriptedClient) Calls() []ScriptedCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ScriptedCall, len(s.calls))
	copy(out, s.calls)
	return out
}
