package tailoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Service calls the AI collaborator to tailor drafts.
type Service struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewService creates a tailoring service. Tailoring uses the advanced tier since it
// needs nuance and style matching.
func NewService(client llm.Client) *Service {
	return &Service{client: client, tier: llm.TierAdvanced}
}

// BuildRequest snapshots the parts of d the collaborator is allowed to see.
func BuildRequest(d types.ResumeDraft, jobDescription string) types.TailorRequest {
	req := types.TailorRequest{
		Personal:       d.Personal,
		Experience:     make([]types.TailorEntry, 0, len(d.Experience)),
		Skills:         d.Skills,
		FinalThoughts:  d.FinalThoughts,
		JobDescription: strings.TrimSpace(jobDescription),
	}
	for _, e := range d.Experience {
		req.Experience = append(req.Experience, types.TailorEntry{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Description: e.Description,
		})
	}
	return req
}

// Tailor returns the overlay for req. The result is schema-validated and normalized;
// on any error no overlay is returned.
func (s *Service) Tailor(ctx context.Context, req types.TailorRequest) (*types.AiOverlay, error) {
	if len(req.Experience) == 0 && strings.TrimSpace(req.Skills) == "" {
		return nil, &InputError{Message: "nothing to tailor: add experience or skills first"}
	}
	if s.client == nil {
		return nil, &APICallError{Message: "AI client is not configured"}
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	responseText, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate overlay", Cause: err}
	}

	return parseOverlay(responseText)
}

func buildPrompt(req types.TailorRequest) (string, error) {
	jobSection := prompts.MustGet("tailoring.json", "no-job-section")
	if req.JobDescription != "" {
		jobSection = prompts.Format(prompts.MustGet("tailoring.json", "job-section"), map[string]string{
			"JobDescription": req.JobDescription,
		})
	}

	experience, err := json.MarshalIndent(req.Experience, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode experience: %w", err)
	}

	candidate := req.Personal.Name
	if candidate == "" {
		candidate = "(name not provided)"
	}

	// Job section goes in last so text inside the job description is never expanded.
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "tailor-resume"), map[string]string{
		"Candidate":     candidate,
		"Skills":        orNone(req.Skills),
		"FinalThoughts": orNone(req.FinalThoughts),
		"Experience":    string(experience),
	})
	return strings.Replace(prompt, "{{.JobSection}}", jobSection, 1), nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

type rawOverlay struct {
	ProfessionalSummary string   `json:"professionalSummary"`
	TechnicalSkills     []string `json:"technicalSkills"`
	DetailedExperience  []struct {
		ID     json.RawMessage `json:"id"`
		Points []string        `json:"points"`
	} `json:"detailedExperience"`
}

// parseOverlay validates and normalizes a collaborator response.
func parseOverlay(responseText string) (*types.AiOverlay, error) {
	cleaned := llm.CleanJSONBlock(responseText)
	if cleaned == "" {
		return nil, &FormatError{Message: "empty response"}
	}
	if err := schemas.Validate(schemas.AiOverlaySchema, []byte(cleaned)); err != nil {
		return nil, &FormatError{Message: "overlay failed schema validation", Cause: err}
	}

	var raw rawOverlay
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &FormatError{Message: "failed to decode overlay", Cause: err}
	}

	overlay := &types.AiOverlay{
		ProfessionalSummary: strings.TrimSpace(raw.ProfessionalSummary),
		TechnicalSkills:     compact(raw.TechnicalSkills),
		DetailedExperience:  make([]types.ExperiencePoints, 0, len(raw.DetailedExperience)),
	}

	seen := make(map[string]bool, len(raw.DetailedExperience))
	for _, ep := range raw.DetailedExperience {
		id := normalizeID(ep.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		overlay.DetailedExperience = append(overlay.DetailedExperience, types.ExperiencePoints{
			ID:     id,
			Points: compact(ep.Points),
		})
	}
	return overlay, nil
}

// normalizeID accepts string or numeric ids; models sometimes drop the quotes.
func normalizeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

// compact trims each string and drops blanks. The result is never nil.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
