package importer

import (
	"bytes"
	"html"
	"io"
	"mime"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Accepted upload types
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var xmlTag = regexp.MustCompile(`<[^>]+>`)

// NormalizeMIME strips parameters and case from a declared content type and checks it
// against the allowlist.
func NormalizeMIME(declared string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(declared))
	}
	switch mediaType {
	case MIMEPDF, MIMEDOCX:
		return mediaType, nil
	}
	return "", &UnsupportedTypeError{MIME: declared}
}

// ExtractText returns the cleaned plain text of a PDF or DOCX document.
func ExtractText(mimeType string, data []byte) (string, error) {
	mediaType, err := NormalizeMIME(mimeType)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &InputError{Message: "file is empty"}
	}

	var text string
	switch mediaType {
	case MIMEPDF:
		text, err = extractPDF(data)
	case MIMEDOCX:
		text, err = extractDOCX(data)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", &ExtractionError{Message: "document contains no readable text"}
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Message: "malformed PDF"}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to read PDF", Cause: err}
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Message: "failed to read PDF text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &ExtractionError{Message: "failed to read PDF text", Cause: err}
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to read DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns WordprocessingML into plain text: one line per paragraph,
// tabs kept, tags dropped and entities decoded.
func docxXMLToText(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
