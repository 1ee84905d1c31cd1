package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/interview"
	"github.com/jonathan/resume-builder/internal/types"
)

// InterviewResponse is the state of the caller's interview conversation.
type InterviewResponse struct {
	Turns   []types.Turn `json:"turns"`
	State   string       `json:"state"`
	Partial string       `json:"partial,omitempty"`
}

// PersonaSummary describes one interviewer persona.
type PersonaSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

func interviewResponse(conv *interview.Conversation) InterviewResponse {
	turns := conv.Turns()
	if turns == nil {
		turns = []types.Turn{}
	}
	return InterviewResponse{Turns: turns, State: conv.State().String(), Partial: conv.Partial()}
}

// handleListPersonas returns the interviewer personas.
func (s *Server) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	personas := s.deps.Interviews.Personas().List()
	out := make([]PersonaSummary, 0, len(personas))
	for _, p := range personas {
		out = append(out, PersonaSummary{ID: p.ID, Name: p.Name, Default: p.ID == interview.DefaultPersona})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetInterview returns the conversation so far.
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, interviewResponse(ws.Conversation()))
}

// handleClearInterview abandons any reply in flight and empties the conversation.
func (s *Server) handleClearInterview(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	conv := ws.Conversation()
	if conv.Abandon() {
		log.Printf("[INTERVIEW] Abandoned reply in flight for %s", ws.OwnerID)
	}
	conv.Clear()
	s.jsonResponse(w, http.StatusOK, interviewResponse(conv))
}

// handleInterviewMessage appends the user's message and streams the interviewer's
// reply as server-sent events: one "fragment" per chunk, then the final "turn". When
// the collaborator fails, the error turn is sent as "turn" followed by "error".
func (s *Server) handleInterviewMessage(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewMessageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.deps.Interviews.Personas().Get(req.Persona); err != nil {
		s.writeError(w, err)
		return
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	conv := ws.Conversation()
	if conv.Awaiting() {
		s.writeError(w, &interview.StateError{Op: "send message", State: conv.State()})
		return
	}

	stream, err := openEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resumeContext := interview.ResumeContext(ws.Draft())
	turn, err := s.deps.Interviews.AppendAndRespond(r.Context(), conv, req.Persona, resumeContext, req.Text, func(fragment string) {
		if werr := stream.send(eventFragment, map[string]string{"text": fragment}); werr != nil {
			log.Printf("[INTERVIEW] Failed to write fragment: %v", werr)
		}
	})

	var collabErr *interview.CollaboratorError
	switch {
	case err == nil:
		_ = stream.send(eventTurn, turn)
	case errors.As(err, &collabErr):
		_ = stream.send(eventTurn, turn)
		stream.fail(err)
	default:
		stream.fail(err)
	}
}
