package importer

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// Size limits
const (
	DefaultMaxBytes = 10 << 20
	maxPromptChars  = 30000
)

// Importer converts uploaded documents into draft pre-fills.
type Importer struct {
	client   llm.Client
	tier     llm.ModelTier
	maxBytes int
	Verbose  bool
}

// New creates an importer. maxBytes <= 0 uses DefaultMaxBytes.
func New(client llm.Client, maxBytes int) *Importer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Importer{client: client, tier: llm.TierStandard, maxBytes: maxBytes}
}

// MaxBytes returns the upload size limit.
func (im *Importer) MaxBytes() int {
	return im.maxBytes
}

// Import extracts the text of data and structures it into a pre-fill. The returned
// draft has no overlay and no template; callers merge it with draft.Store.LoadFromImport.
func (im *Importer) Import(ctx context.Context, mimeType string, data []byte) (types.ResumeDraft, error) {
	if _, err := NormalizeMIME(mimeType); err != nil {
		return types.ResumeDraft{}, err
	}
	if len(data) == 0 {
		return types.ResumeDraft{}, &InputError{Message: "file is empty"}
	}
	if len(data) > im.maxBytes {
		return types.ResumeDraft{}, &InputError{
			Message: fmt.Sprintf("file is %d bytes; the limit is %d", len(data), im.maxBytes),
		}
	}

	text, err := ExtractText(mimeType, data)
	if err != nil {
		return types.ResumeDraft{}, err
	}
	if im.Verbose {
		log.Printf("[IMPORT] Extracted %d characters from %s", len(text), mimeType)
	}

	return im.Structure(ctx, text)
}

// Structure asks the collaborator to map plain resume text onto the draft shape.
func (im *Importer) Structure(ctx context.Context, text string) (types.ResumeDraft, error) {
	if text == "" {
		return types.ResumeDraft{}, &ExtractionError{Message: "document contains no readable text"}
	}
	if im.client == nil {
		return types.ResumeDraft{}, &ParseError{Message: "AI client is not configured"}
	}

	prompt := buildStructurePrompt(truncate(text, maxPromptChars))
	responseText, err := im.client.GenerateJSON(ctx, prompt, im.tier)
	if err != nil {
		return types.ResumeDraft{}, &ParseError{Message: "parser call failed", Cause: err}
	}

	d, err := parseImportedDraft(responseText)
	if err != nil {
		return types.ResumeDraft{}, err
	}
	if im.Verbose {
		log.Printf("[IMPORT] Structured %d experience entries", len(d.Experience))
	}
	return d, nil
}
