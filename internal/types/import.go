package types

// ImportResult is the response of a document import: the pre-fill built from the
// uploaded file, and whether it was merged into the caller's draft.
type ImportResult struct {
	Draft   ResumeDraft `json:"draft"`
	Applied bool        `json:"applied"`
}
