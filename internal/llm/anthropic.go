package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

const AnthropicProviderName = "anthropic"

// AnthropicChatProvider streams completions from the Anthropic Messages API.
type AnthropicChatProvider struct {
	client *anthropic.Client
	model  string
}

var _ ChatProvider = (*AnthropicChatProvider)(nil)

func NewAnthropicChatProvider(settings ProviderSettings) (ChatProvider, error) {
	if settings.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicChatProvider{client: &client, model: settings.Model}, nil
}

func (p *AnthropicChatProvider) Name() string {
	return fmt.Sprintf("Anthropic (%s)", p.model)
}

func (p *AnthropicChatProvider) StreamCompletion(ctx context.Context, req CompletionRequest) (CompletionStream, error) {
	system, turns := splitSystem(req.Messages)

	maxTokens := int64(req.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages:  buildAnthropicMessages(turns),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	return &anthropicStream{stream: stream}, nil
}

// splitSystem lifts system turns out of the transcript; the Messages API takes
// them as a separate field.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	turns := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}
	return strings.Join(system, "\n\n"), turns
}

func buildAnthropicMessages(turns []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, msg := range turns {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
			continue
		}
		out = append(out, anthropic.NewUserMessage(block))
	}
	return out
}

type anthropicStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
	text   string
}

func (s *anthropicStream) Next() bool {
	for s.stream.Next() {
		event := s.stream.Current()
		if event.Type != "content_block_delta" || event.Delta.Type != "text_delta" {
			continue
		}
		if event.Delta.Text != "" {
			s.text = event.Delta.Text
			return true
		}
	}
	return false
}

func (s *anthropicStream) Text() string { return s.text }

func (s *anthropicStream) Err() error {
	err := s.stream.Err()
	if err == nil {
		return nil
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: AnthropicProviderName, StatusCode: apiErr.StatusCode, Message: firstLine(apiErr.Error())}
	}
	return fmt.Errorf("anthropic streaming error: %w", err)
}

func (s *anthropicStream) Close() error { return s.stream.Close() }

// firstLine trims the multi-line SDK error down to its first line.
func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
