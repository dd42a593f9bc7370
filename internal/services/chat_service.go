package services

import (
	"bizdash-backend/internal/llm"
	"bizdash-backend/internal/models"
	"context"
	"errors"
	"log/slog"
)

// ErrChatTimeout is reported when the exchange outlives its deadline.
var ErrChatTimeout = errors.New("chat exceeded its maximum duration")

// ChatOutcome is how a relayed chat exchange ended.
type ChatOutcome string

const (
	ChatCompleted ChatOutcome = "completed"
	ChatAborted   ChatOutcome = "aborted"
	ChatFailed    ChatOutcome = "failed"
)

// ChatResult summarizes a relayed exchange. Err is set only for ChatFailed.
type ChatResult struct {
	Outcome   ChatOutcome
	Fragments int
	Err       error
}

// ChatServiceConfig fixes the parameters of every upstream request.
type ChatServiceConfig struct {
	SystemPrompt    string
	MaxOutputTokens int
	Temperature     float64
}

// ChatService relays chat transcripts to a streaming completion provider.
type ChatService struct {
	provider llm.ChatProvider
	cfg      ChatServiceConfig
	logger   *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(provider llm.ChatProvider, cfg ChatServiceConfig, logger *slog.Logger) *ChatService {
	return &ChatService{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With("component", "chat_service"),
	}
}

// BuildRequest prepends the system prompt to the caller's transcript. The
// caller's messages keep their order and content.
func (s *ChatService) BuildRequest(messages []models.UIMessage) llm.CompletionRequest {
	out := make([]llm.Message, 0, len(messages)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: s.cfg.SystemPrompt})
	for _, msg := range messages {
		out = append(out, llm.Message{Role: llm.Role(msg.Role), Content: msg.Text()})
	}
	return llm.CompletionRequest{
		Messages:        out,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		Temperature:     s.cfg.Temperature,
	}
}

// Relay streams the provider's answer to emit, one fragment per call, until
// the provider finishes, fails or ctx is cancelled. No fragment is emitted
// once cancellation has been observed. An emit error means the caller went
// away and is treated as an abort.
func (s *ChatService) Relay(ctx context.Context, messages []models.UIMessage, emit func(fragment string) error) ChatResult {
	req := s.BuildRequest(messages)
	s.logger.Debug("relaying chat", "provider", s.provider.Name(), "messages", len(req.Messages))

	stream, err := s.provider.StreamCompletion(ctx, req)
	if err != nil {
		return s.finish(ctx, 0, err)
	}
	defer stream.Close()

	fragments := 0
	for stream.Next() {
		if ctx.Err() != nil {
			break
		}
		if err := emit(stream.Text()); err != nil {
			s.logger.Info("chat aborted by user", "fragments", fragments, "reason", err)
			return ChatResult{Outcome: ChatAborted, Fragments: fragments}
		}
		fragments++
	}
	return s.finish(ctx, fragments, stream.Err())
}

func (s *ChatService) finish(ctx context.Context, fragments int, err error) ChatResult {
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.Canceled):
		s.logger.Info("chat aborted by user", "fragments", fragments)
		return ChatResult{Outcome: ChatAborted, Fragments: fragments}
	case errors.Is(ctxErr, context.DeadlineExceeded):
		s.logger.Warn("chat timed out", "fragments", fragments)
		return ChatResult{Outcome: ChatFailed, Fragments: fragments, Err: ErrChatTimeout}
	case err != nil:
		s.logger.Error("chat provider failed", "provider", s.provider.Name(), "fragments", fragments, "error", err)
		return ChatResult{Outcome: ChatFailed, Fragments: fragments, Err: err}
	}
	return ChatResult{Outcome: ChatCompleted, Fragments: fragments}
}
