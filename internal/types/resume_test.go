//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft() ResumeDraft {
	return ResumeDraft{
		Personal: PersonalDetails{Name: "Ada Lovelace", Email: "ada@example.com"},
		Experience: []ExperienceEntry{
			{ID: "1", Title: "Engineer", Company: "Acme", Description: "Built stuff", Points: []string{"Led X"}},
			{ID: "2", Title: "Intern", Company: "Beta", Description: "Helped out"},
		},
		Skills:     "Go, SQL",
		TemplateID: "classic",
		Overlay: &AiOverlay{
			ProfessionalSummary: "Engineer",
			TechnicalSkills:     []string{"Go"},
			DetailedExperience:  []ExperiencePoints{{ID: "1", Points: []string{"Led X"}}},
		},
	}
}

func TestResumeDraft_CloneIsDeep(t *testing.T) {
	original := sampleDraft()
	clone := original.Clone()

	clone.Experience[0].Title = "Changed"
	clone.Experience[0].Points[0] = "Changed"
	clone.Overlay.TechnicalSkills[0] = "Rust"
	clone.Overlay.DetailedExperience[0].Points[0] = "Changed"

	assert.Equal(t, "Engineer", original.Experience[0].Title)
	assert.Equal(t, "Led X", original.Experience[0].Points[0])
	assert.Equal(t, "Go", original.Overlay.TechnicalSkills[0])
	assert.Equal(t, "Led X", original.Overlay.DetailedExperience[0].Points[0])
}

func TestResumeDraft_CloneNilOverlay(t *testing.T) {
	d := ResumeDraft{}
	clone := d.Clone()
	assert.Nil(t, clone.Overlay)
	assert.Nil(t, clone.Experience)
}

func TestResumeDraft_FindExperience(t *testing.T) {
	d := sampleDraft()
	assert.Equal(t, 1, d.FindExperience("2"))
	assert.Equal(t, -1, d.FindExperience("missing"))
}

func TestResumeDraft_JSONFieldNames(t *testing.T) {
	jsonBytes, err := json.Marshal(sampleDraft())
	require.NoError(t, err)

	s := string(jsonBytes)
	assert.Contains(t, s, `"finalThoughts"`)
	assert.Contains(t, s, `"templateId":"classic"`)
	assert.Contains(t, s, `"aiOverlay"`)
	assert.Contains(t, s, `"professionalSummary"`)
	assert.Contains(t, s, `"detailedExperience"`)
}

func TestUpdateExperienceRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request UpdateExperienceRequest
		wantErr bool
	}{
		{name: "valid title", request: UpdateExperienceRequest{Field: FieldTitle, Value: "Lead"}},
		{name: "valid empty value", request: UpdateExperienceRequest{Field: FieldDescription}},
		{name: "missing field", request: UpdateExperienceRequest{Value: "x"}, wantErr: true},
		{name: "unknown field", request: UpdateExperienceRequest{Field: "salary", Value: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTailorHTTPRequest_Validation(t *testing.T) {
	assert.NoError(t, (&TailorHTTPRequest{}).Validate())
	assert.NoError(t, (&TailorHTTPRequest{JobDescriptionURL: "https://jobs.example.com/1"}).Validate())
	assert.Error(t, (&TailorHTTPRequest{JobDescriptionURL: "not a url"}).Validate())
}

func TestInterviewMessageRequest_Validation(t *testing.T) {
	assert.NoError(t, (&InterviewMessageRequest{Text: "hello"}).Validate())
	assert.Error(t, (&InterviewMessageRequest{}).Validate())
}

func TestTemplateRequest_Validation(t *testing.T) {
	assert.NoError(t, (&TemplateRequest{TemplateID: "modern"}).Validate())
	assert.Error(t, (&TemplateRequest{}).Validate())
}
