package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/jonathan/resume-builder/internal/types"
)

// multipartOverhead is the allowance for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

// handleImport extracts and structures an uploaded PDF or DOCX resume. With
// ?apply=true the pre-fill is merged into the draft; otherwise it is only returned.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	apply := false
	if raw := r.URL.Query().Get("apply"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "apply", Message: "must be true or false"})
			return
		}
		apply = v
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	release, err := ws.BeginImport()
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer release()

	maxBytes := s.deps.Importer.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes)+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, err)
			return
		}
		s.writeError(w, &ErrValidation{Field: "file", Message: "a multipart file field named \"file\" is required", cause: err})
		return
	}
	defer func() { _ = file.Close() }()

	// One byte past the limit lets the importer report the size error.
	data, err := io.ReadAll(io.LimitReader(file, int64(maxBytes)+1))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "file", Message: "failed to read upload", cause: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.deps.AITimeout)
	defer cancel()

	mimeType := header.Header.Get("Content-Type")
	prefill, err := s.deps.Importer.Import(ctx, mimeType, data)
	if err != nil {
		log.Printf("[IMPORT] %s (%s, %d bytes) failed: %v", header.Filename, mimeType, len(data), err)
		s.writeError(w, err)
		return
	}
	log.Printf("[IMPORT] %s: %d experience entries", header.Filename, len(prefill.Experience))

	result := types.ImportResult{Draft: prefill}
	if apply {
		d, err := ws.ApplyImport(r.Context(), prefill)
		if err != nil {
			s.writeError(w, err)
			return
		}
		result.Draft = d
		result.Applied = true
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTailor sends the draft and a job description to the AI collaborator and
// stores the returned overlay, unless the draft was reset or re-imported meanwhile.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req types.TailorHTTPRequest
	if err := s.decodeJSON(w, r, &req); err != nil && !isEmptyBody(err) {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.deps.AITimeout)
	defer cancel()

	jobDescription := req.JobDescription
	if jobDescription == "" && req.JobDescriptionURL != "" {
		posting, err := s.deps.Jobs.JobDescription(ctx, req.JobDescriptionURL)
		if err != nil {
			s.writeError(w, err)
			return
		}
		jobDescription = posting.Text
	}

	snapshot, gen, release, err := ws.BeginTailor()
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer release()

	overlay, err := s.deps.Tailor.Tailor(ctx, tailoring.BuildRequest(snapshot, jobDescription))
	if err != nil {
		log.Printf("[TAILOR] Failed for %s: %v", ws.OwnerID, err)
		s.writeError(w, err)
		return
	}

	d, err := ws.CommitOverlay(r.Context(), gen, overlay)
	if err != nil {
		s.writeError(w, err)
		return
	}
	log.Printf("[TAILOR] Overlay stored for %s: %d entries", ws.OwnerID, len(overlay.DetailedExperience))
	s.jsonResponse(w, http.StatusOK, draftResponse(d))
}
