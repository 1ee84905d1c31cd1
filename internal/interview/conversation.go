package interview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// State is the fragment-accumulator state of a conversation.
type State int

// Conversation states
const (
	Idle State = iota
	AwaitingFirstFragment
	Accumulating
	Finalized
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingFirstFragment:
		return "awaiting-first-fragment"
	case Accumulating:
		return "accumulating"
	case Finalized:
		return "finalized"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Error turn texts
const (
	unavailableText = "The interviewer is unavailable right now. Please try again."
	timeoutText     = "The interviewer took too long to respond. Please try again."
)

// Conversation is one interview: its ordered turns and the reply in progress.
// Every response operation carries the generation returned by Submit; a mismatch means
// the response belongs to an abandoned exchange.
type Conversation struct {
	mu         sync.Mutex
	turns      []types.Turn
	state      State
	generation uint64
	pending    strings.Builder
}

// NewConversation returns an idle conversation with no turns.
func NewConversation() *Conversation {
	return &Conversation{turns: []types.Turn{}}
}

// Submit appends the user turn and opens a pending reply. It returns the generation
// that every fragment of that reply must carry.
func (c *Conversation) Submit(text string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return 0, &InputError{Message: "message is empty"}
	}
	if c.awaiting() {
		return 0, &StateError{Op: "submit", State: c.state}
	}

	c.turns = append(c.turns, types.Turn{Sender: types.SenderUser, Text: text})
	c.generation++
	c.pending.Reset()
	c.state = AwaitingFirstFragment
	return c.generation, nil
}

// Fragment appends s to the reply in progress.
func (c *Conversation) Fragment(gen uint64, s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(gen) {
		return ErrStaleResponse
	}
	c.pending.WriteString(s)
	c.state = Accumulating
	return nil
}

// Finalize appends the accumulated reply as an AI turn and returns it.
func (c *Conversation) Finalize(gen uint64) (types.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(gen) {
		return types.Turn{}, ErrStaleResponse
	}
	turn := types.Turn{Sender: types.SenderAI, Text: c.pending.String()}
	c.turns = append(c.turns, turn)
	c.pending.Reset()
	c.state = Finalized
	return turn, nil
}

// Fail discards the partial reply and appends a terminal error turn. The user turn
// that triggered the request is kept.
func (c *Conversation) Fail(gen uint64, cause error) (types.Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(gen) {
		return types.Turn{}, ErrStaleResponse
	}
	text := unavailableText
	if errors.Is(cause, context.DeadlineExceeded) {
		text = timeoutText
	}
	turn := types.Turn{Sender: types.SenderAI, Text: text, Error: true}
	c.turns = append(c.turns, turn)
	c.pending.Reset()
	c.state = Errored
	return turn, nil
}

// Abandon stops waiting for the pending reply. A late fragment or completion is then
// rejected as stale. It reports whether a reply was pending.
func (c *Conversation) Abandon() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.awaiting() {
		return false
	}
	c.generation++
	c.pending.Reset()
	c.state = Idle
	return true
}

// Clear abandons any pending reply and removes every turn.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.pending.Reset()
	c.turns = []types.Turn{}
	c.state = Idle
}

// Awaiting reports whether a reply is in flight. New submissions are refused meanwhile.
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting()
}

// State returns the accumulator state.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the current generation.
func (c *Conversation) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Partial returns the text accumulated so far for the reply in progress.
func (c *Conversation) Partial() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.String()
}

// Turns returns a copy of the finalized turns.
func (c *Conversation) Turns() []types.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Turn{}, c.turns...)
}

func (c *Conversation) awaiting() bool {
	return c.state == AwaitingFirstFragment || c.state == Accumulating
}

func (c *Conversation) current(gen uint64) bool {
	return gen == c.generation && c.awaiting()
}
