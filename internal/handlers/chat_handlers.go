package handlers

import (
	"bizdash-backend/internal/llm"
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/services"
	"bizdash-backend/pkg/httputil"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// ChatRelay defines the interface expected from the chat service.
type ChatRelay interface {
	Relay(ctx context.Context, messages []models.UIMessage, emit func(fragment string) error) services.ChatResult
}

// ChatHandlers streams assistant answers as a UI message stream.
type ChatHandlers struct {
	relay  ChatRelay
	logger *slog.Logger
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(relay ChatRelay, logger *slog.Logger) *ChatHandlers {
	return &ChatHandlers{
		relay:  relay,
		logger: logger.With("component", "chat_handler"),
	}
}

// HandleChat handles POST /v1/chat
func (h *ChatHandlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	for i, msg := range req.Messages {
		if !msg.Role.Valid() {
			httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("messages[%d]: unsupported role %q", i, msg.Role))
			return
		}
	}

	stream, err := httputil.NewEventStream(w, map[string]string{models.UIMessageStreamHeader: "v1"})
	if err != nil {
		h.logger.Error("cannot stream chat response", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	messageID := uuid.NewString()
	textID := uuid.NewString()
	textStarted := false

	if err := stream.Send(models.StreamChunk{Type: models.ChunkStart, MessageID: messageID}); err != nil {
		h.logger.Info("chat aborted by user", "message_id", messageID, "reason", err)
		return
	}

	result := h.relay.Relay(r.Context(), req.Messages, func(fragment string) error {
		if !textStarted {
			if err := stream.Send(models.StreamChunk{Type: models.ChunkTextStart, ID: textID}); err != nil {
				return err
			}
			textStarted = true
		}
		return stream.Send(models.StreamChunk{Type: models.ChunkTextDelta, ID: textID, Delta: fragment})
	})

	switch result.Outcome {
	case services.ChatAborted:
		// The client is gone; nothing more is written.
		return
	case services.ChatFailed:
		h.logger.Warn("chat stream terminated with error",
			"message_id", messageID, "fragments", result.Fragments, "error", result.Err)
		_ = stream.Send(models.StreamChunk{Type: models.ChunkError, ErrorText: chatErrorText(result.Err)})
	default:
		if textStarted {
			_ = stream.Send(models.StreamChunk{Type: models.ChunkTextEnd, ID: textID})
		}
		_ = stream.Send(models.StreamChunk{Type: models.ChunkFinish})
		h.logger.Debug("chat completed", "message_id", messageID, "fragments", result.Fragments)
	}
	_ = stream.Done()
}

// chatErrorText is the client-facing description of a relay failure.
func chatErrorText(err error) string {
	if errors.Is(err, services.ErrChatTimeout) {
		return "The assistant took too long to respond. Please try again."
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("The %s provider returned an error (status %d).", statusErr.Provider, statusErr.StatusCode)
	}
	return "The assistant is unavailable right now. Please try again."
}
