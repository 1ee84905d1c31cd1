package importer

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// importedDraft is the collaborator's answer. Every field may be null or absent.
type importedDraft struct {
	Name          *string         `json:"name"`
	Email         *string         `json:"email"`
	Phone         *string         `json:"phone"`
	LinkedIn      *string         `json:"linkedin"`
	GitHub        *string         `json:"github"`
	Skills        json.RawMessage `json:"skills"`
	FinalThoughts *string         `json:"finalThoughts"`
	Experience    []importedEntry `json:"experience"`
}

type importedEntry struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
}

func resumeExtractionSchema() llm.ExtractionSchema {
	return llm.ExtractionSchema{
		Name:        "ResumeDraft",
		Description: prompts.MustGet("import.json", "structure-resume"),
		Missing:     prompts.MustGet("import.json", "missing-values"),
		Fields: []llm.SchemaField{
			{Name: "name", Description: "candidate's full name", Required: true},
			{Name: "email"},
			{Name: "phone"},
			{Name: "linkedin", Description: "LinkedIn profile URL or handle"},
			{Name: "github", Description: "GitHub profile URL or handle"},
			{Name: "skills", Description: "comma-separated skills as written"},
			{Name: "finalThoughts", Description: "closing statement or objective, if any"},
			{
				Name:        "experience",
				Type:        `[{"title": "string", "company": "string", "startDate": "string", "endDate": "string", "description": "string"}]`,
				Description: "most recent first, as listed",
				Required:    true,
			},
		},
	}
}

// buildStructurePrompt renders the extraction prompt for text.
func buildStructurePrompt(text string) string {
	return llm.BuildExtractionPrompt(resumeExtractionSchema(), text)
}

// parseImportedDraft validates a collaborator response and maps it onto a draft
// pre-fill. Experience entries get fresh ids; the template and overlay are left empty.
func parseImportedDraft(responseText string) (types.ResumeDraft, error) {
	cleaned := llm.CleanJSONBlock(responseText)
	if cleaned == "" {
		return types.ResumeDraft{}, &ParseError{Message: "empty response"}
	}
	if err := schemas.Validate(schemas.ImportedDraftSchema, []byte(cleaned)); err != nil {
		return types.ResumeDraft{}, &ParseError{Message: "response failed schema validation", Cause: err}
	}

	var raw importedDraft
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return types.ResumeDraft{}, &ParseError{Message: "failed to decode response", Cause: err}
	}

	skills, err := decodeSkills(raw.Skills)
	if err != nil {
		return types.ResumeDraft{}, &ParseError{Message: "failed to decode skills", Cause: err}
	}

	d := types.ResumeDraft{
		Personal: types.PersonalDetails{
			Name:     str(raw.Name),
			Email:    str(raw.Email),
			Phone:    str(raw.Phone),
			LinkedIn: str(raw.LinkedIn),
			GitHub:   str(raw.GitHub),
		},
		Experience:    make([]types.ExperienceEntry, 0, len(raw.Experience)),
		Skills:        skills,
		FinalThoughts: str(raw.FinalThoughts),
	}
	for _, e := range raw.Experience {
		entry := types.ExperienceEntry{
			ID:          uuid.NewString(),
			Title:       str(e.Title),
			Company:     str(e.Company),
			StartDate:   str(e.StartDate),
			EndDate:     str(e.EndDate),
			Description: str(e.Description),
		}
		if entry.Title == "" && entry.Company == "" && entry.Description == "" {
			continue
		}
		d.Experience = append(d.Experience, entry)
	}
	return d, nil
}

// decodeSkills accepts a string or a list of strings; lists are joined with ", ".
func decodeSkills(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", err
	}
	kept := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, ", "), nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
