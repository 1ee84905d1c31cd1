package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes a structured extraction: the task, the JSON fields the
// model must return, and how to fill values that are absent from the input.
type ExtractionSchema struct {
	Name        string // e.g. "ResumeDraft"
	Description string // task preamble
	Fields      []SchemaField
	Missing     string // instruction for absent values; empty omits it
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // JSON shape hint such as "string" or [{"title": "string"}]
	Description string
	Required    bool
}

// BuildExtractionPrompt renders schema and the input text into a single prompt.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(schema.Description))
	sb.WriteString("\n\nRespond with one JSON object of this shape")
	if schema.Name != "" {
		fmt.Fprintf(&sb, " (%s)", schema.Name)
	}
	sb.WriteString(":\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, typeHint)
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		var notes []string
		if field.Required {
			notes = append(notes, "required")
		}
		if field.Description != "" {
			notes = append(notes, field.Description)
		}
		if len(notes) > 0 {
			fmt.Fprintf(&sb, " // %s", strings.Join(notes, "; "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\nRules:\n")
	sb.WriteString("- Copy values from the input; do not invent facts.\n")
	if schema.Missing != "" {
		fmt.Fprintf(&sb, "- %s\n", schema.Missing)
	}
	sb.WriteString("- Output only the JSON object: no markdown, no commentary.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}
