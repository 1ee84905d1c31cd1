package prompts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	tests := []struct {
		name, file, key string
		wantErr         string
		wantText        string
	}{
		{name: "tailoring", file: "tailoring.json", key: "tailor-resume", wantText: "detailedExperience"},
		{name: "import", file: "import.json", key: "structure-resume"},
		{name: "missing file", file: "nonexistent.json", key: "x", wantErr: "failed to read prompt file"},
		{name: "missing key", file: "tailoring.json", key: "nonexistent-key", wantErr: "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, text)
			assert.Contains(t, text, tt.wantText)
		})
	}
}

func TestMustGet(t *testing.T) {
	assert.NotPanics(t, func() { MustGet("interview.json", "session-rules") })
	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
}

func TestFormatAndUnfilled(t *testing.T) {
	tmpl := "Tailor {{.Name}}'s resume for {{.Role}} at {{.Company}}"

	out := Format(tmpl, map[string]string{"Name": "Ada", "Company": "Acme Corp"})
	assert.Equal(t, "Tailor Ada's resume for {{.Role}} at Acme Corp", out)
	assert.Equal(t, []string{"Role"}, Unfilled(out))

	assert.Equal(t, tmpl, Format(tmpl, nil))
	assert.Empty(t, Unfilled("no placeholders"))
}

func TestList(t *testing.T) {
	keys, err := List("interview.json")
	require.NoError(t, err)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "persona-technical")

	_, err = List("missing.json")
	assert.Error(t, err)
}

func TestEmbeddedFiles(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"import.json", "interview.json", "tailoring.json"}, files)

	for _, f := range files {
		raw, err := promptFiles.ReadFile(f)
		require.NoError(t, err)
		var s set
		require.NoError(t, json.Unmarshal(raw, &s), f)
		for key, text := range s {
			assert.NotEmpty(t, text, "%s/%s", f, key)
		}
	}
}

func TestClearCache(t *testing.T) {
	_, err := Get("import.json", "structure-resume")
	require.NoError(t, err)
	_, cached := loaded.Load("import.json")
	require.True(t, cached)

	ClearCache()
	_, cached = loaded.Load("import.json")
	assert.False(t, cached)
}
