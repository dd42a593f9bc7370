package models

import "strings"

// MessageRole is the author of a UI message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// PartTypeText is the only message part type forwarded to the model.
const PartTypeText = "text"

// MessagePart is one piece of a UI message. Non-text parts are ignored.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// UIMessage is a single message of the browser-side chat transcript.
type UIMessage struct {
	ID    string        `json:"id,omitempty"`
	Role  MessageRole   `json:"role"`
	Parts []MessagePart `json:"parts"`
}

// Text joins the message's text parts.
func (m UIMessage) Text() string {
	var b strings.Builder
	for _, part := range m.Parts {
		if part.Type != PartTypeText {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// Valid reports whether the role is one the relay understands.
func (r MessageRole) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}
