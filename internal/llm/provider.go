package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a provider-neutral chat turn.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is sent to a ChatProvider.
type CompletionRequest struct {
	Messages        []Message
	MaxOutputTokens int
	Temperature     float64
}

// CompletionStream yields text fragments as they arrive from a provider.
// Callers must Close it to release the upstream connection.
type CompletionStream interface {
	// Next blocks until another fragment is available. It returns false at
	// end of stream or on error; Err distinguishes the two.
	Next() bool
	Text() string
	Err() error
	Close() error
}

// ChatProvider streams chat completions.
type ChatProvider interface {
	Name() string
	StreamCompletion(ctx context.Context, req CompletionRequest) (CompletionStream, error)
}

// TextGenerator produces a single completion for a prompt.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrMalformedResponse is returned when a provider answers with a body that
// lacks the fields carrying the generated text.
var ErrMalformedResponse = errors.New("malformed provider response")

// StatusError is an HTTP-level failure reported by a provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
}

// StatusCode returns the provider HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
