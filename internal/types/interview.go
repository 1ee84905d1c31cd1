// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Sender identifies who produced a chat turn.
type Sender string

// Turn senders
const (
	SenderUser Sender = "user"
	SenderAI   Sender = "AI"
)

// Turn is one message in an interview conversation.
// Error marks the terminal turn appended when the remote collaborator failed.
type Turn struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
	Error  bool   `json:"error,omitempty"`
}
