package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

const OpenAIProviderName = "openai"

// OpenAIChatProvider streams completions from the OpenAI Chat Completions API.
type OpenAIChatProvider struct {
	client *openai.Client
	model  string
}

var _ ChatProvider = (*OpenAIChatProvider)(nil)

// NewOpenAIChatProvider creates an OpenAI-backed provider. SDK retries are
// disabled: failures are forwarded to the caller as-is.
func NewOpenAIChatProvider(settings ProviderSettings) (ChatProvider, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIChatProvider{client: &client, model: settings.Model}, nil
}

func (p *OpenAIChatProvider) Name() string {
	return fmt.Sprintf("OpenAI (%s)", p.model)
}

func (p *OpenAIChatProvider) StreamCompletion(ctx context.Context, req CompletionRequest) (CompletionStream, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: buildOpenAIMessages(req.Messages),
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxOutputTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	return &openAIStream{stream: stream}, nil
}

func buildOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

type openAIStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
	text   string
}

func (s *openAIStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			s.text = content
			return true
		}
	}
	return false
}

func (s *openAIStream) Text() string { return s.text }

func (s *openAIStream) Err() error {
	return normalizeOpenAIError(s.stream.Err())
}

func (s *openAIStream) Close() error { return s.stream.Close() }

func normalizeOpenAIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: OpenAIProviderName, StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return fmt.Errorf("openai streaming error: %w", err)
}
