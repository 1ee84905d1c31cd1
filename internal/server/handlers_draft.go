package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftResponse is the draft plus whether it can be previewed and exported.
type DraftResponse struct {
	Draft types.ResumeDraft `json:"draft"`
	Ready bool              `json:"ready"`
}

// AddExperienceResponse reports the id issued for a new entry.
type AddExperienceResponse struct {
	ID string `json:"id"`
	DraftResponse
}

func draftResponse(d types.ResumeDraft) DraftResponse {
	return DraftResponse{Draft: d, Ready: reconcile.Ready(d) == nil}
}

// handleGetDraft returns the caller's draft.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, draftResponse(ws.Draft()))
}

// handleResetDraft returns the draft to its empty initial state.
func (s *Server) handleResetDraft(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	d, err := ws.Reset(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draftResponse(d))
}

// handleSetPersonal merges a partial personal-details update.
func (s *Server) handleSetPersonal(w http.ResponseWriter, r *http.Request) {
	var patch types.PersonalPatch
	if err := s.decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	if err := patch.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	s.update(w, r, func(st *draft.Store) error { return st.SetPersonal(patch) })
}

// handleAddExperience appends an entry. An empty body adds a blank entry.
func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var entry types.ExperienceEntry
	if err := s.decodeJSON(w, r, &entry); err != nil && !isEmptyBody(err) {
		s.writeError(w, err)
		return
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var id string
	d, err := ws.Update(r.Context(), func(st *draft.Store) error {
		var err error
		id, err = st.AddExperience(entry)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, AddExperienceResponse{ID: id, DraftResponse: draftResponse(d)})
}

// handleUpdateExperience sets one field of one entry.
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req types.UpdateExperienceRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	s.update(w, r, func(st *draft.Store) error { return st.UpdateExperience(id, req.Field, req.Value) })
}

// handleRemoveExperience deletes one entry.
func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.update(w, r, func(st *draft.Store) error { return st.RemoveExperience(id) })
}

// handleSetSkills replaces the skills text.
func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.update(w, r, func(st *draft.Store) error { return st.SetSkills(req.Value) })
}

// handleSetFinalThoughts replaces the final-thoughts text.
func (s *Server) handleSetFinalThoughts(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.update(w, r, func(st *draft.Store) error { return st.SetFinalThoughts(req.Value) })
}

// handleSetTemplate selects a template. Unknown ids are rejected here since the store
// does not know the catalog.
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if !s.deps.Templates.Has(req.TemplateID) {
		s.writeError(w, &rendering.TemplateNotFoundError{ID: req.TemplateID})
		return
	}
	s.update(w, r, func(st *draft.Store) error { return st.SetTemplate(req.TemplateID) })
}

// update applies fn to the caller's draft and writes the result.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*draft.Store) error) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	d, err := ws.Update(r.Context(), fn)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draftResponse(d))
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
