package docx

import (
	"bytes"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	docxreader "github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WritesReadableDocument(t *testing.T) {
	doc, err := rendering.Render("modern", rendering.SampleResume(), rendering.TargetDOCX)
	require.NoError(t, err)

	data, err := Bytes(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")), "docx is a zip archive")

	r, err := docxreader.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	defer r.Close()

	content := r.Editable().GetContent()
	assert.Contains(t, content, "Jordan Rivera")
	assert.Contains(t, content, "Northwind Logistics")
	assert.Contains(t, content, "Technical Skills")
	assert.Contains(t, content, "Go, PostgreSQL")
	assert.Contains(t, content, rendering.DateRange("2021", ""), "dates read the same as the HTML encoders")
	assert.Contains(t, content, "2017 – 2021")
}

func TestEncode_NilDocument(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, nil))
}
