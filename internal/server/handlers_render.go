package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rendering/docx"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// editPath is where clients send the user when a draft is not ready to render.
const editPath = "/edit"

// TemplateSummary describes one template in the catalog.
type TemplateSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Layout  string `json:"layout"`
	Sidebar bool   `json:"sidebar"`
}

// ExportResponse is returned when the export was uploaded instead of streamed.
type ExportResponse struct {
	URL        string `json:"url"`
	Key        string `json:"key"`
	TemplateID string `json:"templateId"`
	Target     string `json:"target"`
	SizeBytes  int    `json:"sizeBytes"`
}

// handleListTemplates returns the template catalog.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	styles := s.deps.Templates.Styles()
	out := make([]TemplateSummary, 0, len(styles))
	for _, st := range styles {
		out = append(out, TemplateSummary{
			ID:      st.ID,
			Name:    st.Name,
			Layout:  string(st.Layout),
			Sidebar: st.HasSidebar(),
		})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handlePreview renders the reconciled draft as screen HTML. ?template= previews
// another template without selecting it.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	doc, ok := s.render(w, ws.Draft(), r.URL.Query().Get("template"), rendering.TargetScreen)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.HTML))
}

// handleExport renders the draft as PDF or DOCX. With an export store configured the
// document is uploaded and a download URL returned; otherwise the bytes are streamed.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("target")
	if raw == "" {
		raw = string(rendering.TargetPDF)
	}
	target, err := rendering.ParseTarget(raw)
	if err != nil || target == rendering.TargetScreen {
		s.writeError(w, &ErrValidation{Field: "target", Message: "must be pdf or docx"})
		return
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	doc, ok := s.render(w, ws.Draft(), r.URL.Query().Get("template"), target)
	if !ok {
		return
	}

	var (
		data        []byte
		contentType string
	)
	switch target {
	case rendering.TargetPDF:
		data, err = s.deps.PDF.Encode(r.Context(), doc)
		contentType = "application/pdf"
	case rendering.TargetDOCX:
		data, err = docx.Bytes(doc)
		contentType = docx.ContentType
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := storage.ExportKey(ws.OwnerID, doc.TemplateID, string(target))
	url, err := s.deps.Exports.Put(r.Context(), key, contentType, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if url == "" {
		key = ""
	}
	s.recordExport(r, ws.OwnerID, db.ExportInput{
		TemplateID: doc.TemplateID,
		Target:     string(target),
		StorageKey: key,
		SizeBytes:  int64(len(data)),
	})

	if url != "" {
		s.jsonResponse(w, http.StatusOK, ExportResponse{
			URL:        url,
			Key:        key,
			TemplateID: doc.TemplateID,
			Target:     string(target),
			SizeBytes:  len(data),
		})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="resume-%s.%s"`, doc.TemplateID, target))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleListExports returns the caller's export history, newest first.
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	limit := db.DefaultExportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if s.deps.ExportLog == nil {
		s.jsonResponse(w, http.StatusOK, []db.Export{})
		return
	}
	exports, err := s.deps.ExportLog.ListExports(r.Context(), ws.OwnerID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if exports == nil {
		exports = []db.Export{}
	}
	s.jsonResponse(w, http.StatusOK, exports)
}

// render reconciles d and lays it out. An untailored draft gets 409 with a hint to
// return to editing.
func (s *Server) render(w http.ResponseWriter, d types.ResumeDraft, override string, target rendering.Target) (*rendering.Document, bool) {
	if err := reconcile.Ready(d); err != nil {
		s.jsonResponse(w, http.StatusConflict, map[string]string{
			"error":    err.Error(),
			"redirect": editPath,
		})
		return nil, false
	}
	doc, err := s.deps.Templates.Render(s.templateID(d, override), reconcile.Reconcile(d), target)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return doc, true
}

// recordExport logs the export in history. Failures are logged, not returned, since
// the document was already produced.
func (s *Server) recordExport(r *http.Request, ownerID string, in db.ExportInput) {
	if s.deps.ExportLog == nil {
		return
	}
	if _, err := s.deps.ExportLog.RecordExport(r.Context(), ownerID, in); err != nil {
		log.Printf("[EXPORT] Failed to record export for %s: %v", ownerID, err)
	}
}
