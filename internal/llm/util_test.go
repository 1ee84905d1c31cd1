package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the overlay:\n{\"professionalSummary\": \"x\"}", `{"professionalSummary": "x"}`},
		{"trailing text", "{\"a\": 1}\n\nLet me know if you need anything else!", `{"a": 1}`},
		{"array", "Items: [\"a\", \"b\"]", `["a", "b"]`},
		{"braces in strings", `{"text": "use {curly} and ] here"}`, `{"text": "use {curly} and ] here"}`},
		{"escaped quotes", `Result: {"m": "He said \"hi\" }"}`, `{"m": "He said \"hi\" }"}`},
		{"no JSON", "I cannot help with that.", "I cannot help with that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject(`{"a": {"b": 1}`))
	assert.Equal(t, "", ExtractJSONObject("plain text"))
}

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "ResumeDraft",
		Description: "Structure this resume.",
		Fields: []SchemaField{
			{Name: "name", Required: true, Description: "full name"},
			{Name: "skills", Type: `"string"`},
		},
		Missing: "Use an empty string for anything not present.",
	}

	prompt := BuildExtractionPrompt(schema, "Ada Lovelace\nAnalyst")

	assert.Contains(t, prompt, "Structure this resume.")
	assert.Contains(t, prompt, `"name": "string", // required; full name`)
	assert.Contains(t, prompt, `"skills": "string"`)
	assert.Contains(t, prompt, "Use an empty string for anything not present.")
	assert.Contains(t, prompt, "Ada Lovelace\nAnalyst")
	assert.Contains(t, prompt, "(ResumeDraft)")
}
