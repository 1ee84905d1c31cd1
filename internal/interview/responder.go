package interview

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTimeout bounds one reply, from request to end of stream.
const DefaultTimeout = 60 * time.Second

// Responder drives one exchange of a conversation against the AI collaborator.
type Responder struct {
	client   llm.Client
	personas *PersonaRegistry
	tier     llm.ModelTier
	Timeout  time.Duration
	Verbose  bool
}

// NewResponder creates a responder. A nil registry uses DefaultPersonas.
func NewResponder(client llm.Client, personas *PersonaRegistry) *Responder {
	if personas == nil {
		personas = DefaultPersonas()
	}
	return &Responder{
		client:   client,
		personas: personas,
		tier:     llm.TierStandard,
		Timeout:  DefaultTimeout,
	}
}

// Personas returns the registry used by the responder.
func (r *Responder) Personas() *PersonaRegistry {
	return r.personas
}

// AppendAndRespond appends userText to conv, sends the whole history to the
// collaborator and streams the reply into conv. onFragment, if set, sees each fragment
// in arrival order after it has been applied.
//
// On success the finalized AI turn is returned. If the collaborator fails or the
// timeout expires, the error turn appended to conv is returned together with a
// *CollaboratorError. If conv was abandoned meanwhile, ErrStreamAbandoned is returned
// and conv is left as the abandoning caller set it.
func (r *Responder) AppendAndRespond(ctx context.Context, conv *Conversation, personaID, resumeContext, userText string, onFragment func(string)) (types.Turn, error) {
	persona, err := r.personas.Get(personaID)
	if err != nil {
		return types.Turn{}, err
	}

	gen, err := conv.Submit(userText)
	if err != nil {
		return types.Turn{}, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if r.client == nil {
		return r.fail(conv, gen, "AI client is not configured", nil)
	}

	system := r.personas.SystemInstruction(persona, resumeContext)
	stream, err := r.client.StreamChat(ctx, system, History(conv.Turns()), r.tier)
	if err != nil {
		return r.fail(conv, gen, "failed to start reply", err)
	}
	defer func() { _ = stream.Close() }()

	received := 0
	for {
		fragment, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			return r.fail(conv, gen, "reply interrupted", err)
		}
		if fragment == "" {
			continue
		}
		if err := conv.Fragment(gen, fragment); err != nil {
			return types.Turn{}, ErrStreamAbandoned
		}
		received++
		if onFragment != nil {
			onFragment(fragment)
		}
	}

	if received == 0 {
		return r.fail(conv, gen, "reply was empty", ErrEmptyResponse)
	}

	turn, err := conv.Finalize(gen)
	if err != nil {
		return types.Turn{}, ErrStreamAbandoned
	}
	if r.Verbose {
		log.Printf("[INTERVIEW] Reply finalized: %d fragments, %d characters", received, len(turn.Text))
	}
	return turn, nil
}

func (r *Responder) fail(conv *Conversation, gen uint64, message string, cause error) (types.Turn, error) {
	turn, err := conv.Fail(gen, cause)
	if err != nil {
		return types.Turn{}, ErrStreamAbandoned
	}
	log.Printf("[INTERVIEW] %s: %v", message, cause)
	return turn, &CollaboratorError{Message: message, Cause: cause}
}

// History converts turns into collaborator messages. Error turns are dropped and
// consecutive turns from the same sender are merged, so roles alternate.
func History(turns []types.Turn) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if t.Error {
			continue
		}
		role := llm.RoleUser
		if t.Sender == types.SenderAI {
			role = llm.RoleModel
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Text = strings.TrimRight(out[n-1].Text, "\n") + "\n\n" + t.Text
			continue
		}
		out = append(out, llm.Message{Role: role, Text: t.Text})
	}
	return out
}
