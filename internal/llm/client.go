// Package llm talks to an external text-generation service.
package llm

import (
	"context"
	"errors"
)

// ErrDisabled is returned by a client built without credentials.
var ErrDisabled = errors.New("llm: client disabled")

// Completion is the result of a text-generation call, whoever produced it.
// TokensUsed is zero when no external call was made.
type Completion struct {
	Text       string
	TokensUsed int
}

// Client generates text from a system and user message pair.
type Client interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
}

type disabledClient struct{}

// Disabled returns a Client that always fails with ErrDisabled.
func Disabled() Client { return disabledClient{} }

func (disabledClient) Complete(context.Context, string, string) (Completion, error) {
	return Completion{}, ErrDisabled
}
