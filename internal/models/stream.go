package models

// Chunk types of the UI message stream protocol.
const (
	ChunkStart     = "start"
	ChunkTextStart = "text-start"
	ChunkTextDelta = "text-delta"
	ChunkTextEnd   = "text-end"
	ChunkFinish    = "finish"
	ChunkError     = "error"
)

// UIMessageStreamHeader marks a response as a UI message stream.
const UIMessageStreamHeader = "x-vercel-ai-ui-message-stream"

// StreamChunk is one server-sent event of the chat stream.
type StreamChunk struct {
	Type      string `json:"type"`
	MessageID string `json:"messageId,omitempty"`
	ID        string `json:"id,omitempty"`
	Delta     string `json:"delta,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
}
