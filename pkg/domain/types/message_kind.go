package types

import "fmt"

// MessageKind represents the kind of a chat message
type MessageKind string

const (
	MessageKindMessage    MessageKind = "message"
	MessageKindSystem     MessageKind = "system"
	MessageKindSuggestion MessageKind = "suggestion"
	MessageKindFile       MessageKind = "file"
	MessageKindCode       MessageKind = "code"
)

// IsValid checks if the message kind is valid
func (k MessageKind) IsValid() bool {
	switch k {
	case MessageKindMessage,
		MessageKindSystem,
		MessageKindSuggestion,
		MessageKindFile,
		MessageKindCode:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message kind
func (k MessageKind) String() string {
	return string(k)
}

// ParseMessageKind parses a string into a MessageKind
func ParseMessageKind(s string) (MessageKind, error) {
	kind := MessageKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid message kind: %s", s)
	}
	return kind, nil
}
