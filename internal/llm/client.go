package llm

import (
	"context"
	"errors"
)

// Completer is the narrow contract the recommendation core needs from a
// language-model provider.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ProviderError covers timeouts, network failures, and provider-side errors.
// The core treats all of them uniformly.
type ProviderError struct {
	Msg string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}
