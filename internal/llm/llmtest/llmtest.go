// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"io"
	"sync"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Call records one request made to a Client.
type Call struct {
	Method  string
	Prompt  string
	System  string
	History []llm.Message
	Tier    llm.ModelTier
}

// Client implements llm.Client with optional function hooks. Unset hooks return
// empty results.
type Client struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	StreamChatFunc   func(ctx context.Context, system string, history []llm.Message, tier llm.ModelTier) (llm.Stream, error)

	mu     sync.Mutex
	calls  []Call
	closes int
}

var _ llm.Client = (*Client)(nil)

func (c *Client) record(call Call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

// Calls returns the requests made so far.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// GenerateJSON implements llm.Client.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	c.record(Call{Method: "GenerateJSON", Prompt: prompt, Tier: tier})
	if c.GenerateJSONFunc != nil {
		return c.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

// StreamChat implements llm.Client.
func (c *Client) StreamChat(ctx context.Context, system string, history []llm.Message, tier llm.ModelTier) (llm.Stream, error) {
	c.record(Call{Method: "StreamChat", System: system, History: append([]llm.Message(nil), history...), Tier: tier})
	if c.StreamChatFunc != nil {
		return c.StreamChatFunc(ctx, system, history, tier)
	}
	return NewStream(), nil
}

// GetModel implements llm.Client.
func (c *Client) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

// Close implements llm.Client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

// Closes returns how many times Close was called.
func (c *Client) Closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// JSON returns a Client whose GenerateJSON always answers body.
func JSON(body string) *Client {
	return &Client{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return body, nil
		},
	}
}

// Stream replays fixed fragments, then Err if set, otherwise io.EOF.
type Stream struct {
	Fragments []string
	Err       error

	pos    int
	closed bool
}

// NewStream returns a stream yielding fragments then io.EOF.
func NewStream(fragments ...string) *Stream {
	return &Stream{Fragments: fragments}
}

// Next implements llm.Stream.
func (s *Stream) Next() (string, error) {
	if s.closed {
		return "", io.EOF
	}
	if s.pos < len(s.Fragments) {
		s.pos++
		return s.Fragments[s.pos-1], nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", io.EOF
}

// Close implements llm.Stream.
func (s *Stream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Stream) Closed() bool {
	return s.closed
}
