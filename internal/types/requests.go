// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// TailorRequest is the input sent across the AI tailoring boundary.
type TailorRequest struct {
	Personal       PersonalDetails `json:"personal"`
	Experience     []TailorEntry   `json:"experience"`
	Skills         string          `json:"skills"`
	FinalThoughts  string          `json:"finalThoughts"`
	JobDescription string          `json:"jobDescription,omitempty"`
}

// TailorEntry is the subset of an experience entry the AI collaborator sees.
type TailorEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// PersonalPatch is a partial update of PersonalDetails. Nil fields are left unchanged.
type PersonalPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,max=320"`
	Phone    *string `json:"phone,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
}

// UpdateExperienceRequest sets one field of one experience entry.
type UpdateExperienceRequest struct {
	Field ExperienceField `json:"field" validate:"required,oneof=title company startDate endDate description"`
	Value string          `json:"value"`
}

// TextRequest carries a single free-text value (skills, final thoughts).
type TextRequest struct {
	Value string `json:"value"`
}

// TemplateRequest selects a template by id.
type TemplateRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

// TailorHTTPRequest is the body of POST /tailor.
type TailorHTTPRequest struct {
	JobDescription    string `json:"jobDescription,omitempty" validate:"max=50000"`
	JobDescriptionURL string `json:"jobDescriptionUrl,omitempty" validate:"omitempty,url"`
}

// InterviewMessageRequest is the body of POST /interview/messages.
type InterviewMessageRequest struct {
	Text    string `json:"text" validate:"required,max=4000"`
	Persona string `json:"persona,omitempty"`
}

// Validate validates the PersonalPatch using the validator.
func (r *PersonalPatch) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateExperienceRequest using the validator.
func (r *UpdateExperienceRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TailorHTTPRequest using the validator.
func (r *TailorHTTPRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the InterviewMessageRequest using the validator.
func (r *InterviewMessageRequest) Validate() error {
	return validate.Struct(r)
}
