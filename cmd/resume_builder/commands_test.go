package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDraft(t *testing.T, d types.ResumeDraft) string {
	t.Helper()
	data, err := json.Marshal(d)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func tailoredDraft() types.ResumeDraft {
	return types.ResumeDraft{
		Personal: types.PersonalDetails{Name: "Jordan Rivera", Email: "jordan@example.com"},
		Experience: []types.ExperienceEntry{
			{ID: "1", Title: "Engineer", Company: "Northwind", StartDate: "2021"},
		},
		Overlay: &types.AiOverlay{
			ProfessionalSummary: "Engineer who ships.",
			TechnicalSkills:     []string{"Go"},
			DetailedExperience:  []types.ExperiencePoints{{ID: "1", Points: []string{"Led the routing migration"}}},
		},
	}
}

func TestTemplatesList(t *testing.T) {
	out, err := execute(t, "templates", "list")
	require.NoError(t, err)
	for _, id := range rendering.DefaultRegistry().IDs() {
		assert.Contains(t, out, id)
	}
}

func TestTemplatesVerify(t *testing.T) {
	out, err := execute(t, "templates", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "templates render on every target")
}

func TestRender_DOCX(t *testing.T) {
	draftPath := writeDraft(t, tailoredDraft())
	outPath := filepath.Join(t.TempDir(), "nested", "resume.docx")

	out, err := execute(t, "render", "--draft", draftPath, "--target", "docx", "--out", outPath, "--template", "")
	require.NoError(t, err)
	assert.Contains(t, out, "template "+config.DefaultTemplate)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRender_ScreenUsesDraftTemplate(t *testing.T) {
	d := tailoredDraft()
	ids := rendering.DefaultRegistry().IDs()
	d.TemplateID = ids[len(ids)-1]
	draftPath := writeDraft(t, d)
	outPath := filepath.Join(t.TempDir(), "resume.html")

	out, err := execute(t, "render", "--draft", draftPath, "--target", "screen", "--out", outPath, "--template", "")
	require.NoError(t, err)
	assert.Contains(t, out, "template "+d.TemplateID)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Led the routing migration")
}

func TestRender_Errors(t *testing.T) {
	untailored := tailoredDraft()
	untailored.Overlay = nil

	invalid := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"personal": {}}`), 0644))

	tests := []struct {
		name    string
		draft   string
		target  string
		wantErr string
	}{
		{"not tailored", writeDraft(t, untailored), "docx", "not ready"},
		{"schema violation", invalid, "docx", "invalid draft file"},
		{"unknown target", writeDraft(t, tailoredDraft()), "latex", "unknown target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "out")
			_, err := execute(t, "render", "--draft", tt.draft, "--target", tt.target, "--out", outPath, "--template", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, outPath)
		})
	}
}

func TestToken(t *testing.T) {
	secret := strings.Repeat("s", 32)
	t.Setenv("AUTH_DISABLED", "")
	t.Setenv("AUTH_JWT_SECRET", secret)
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("AUTH_AUDIENCE", "")

	out, err := execute(t, "token", "--subject", "alice")
	require.NoError(t, err)

	owner, err := server.NewVerifier(&config.AuthConfig{Secret: secret}).OwnerID(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestToken_AuthDisabled(t *testing.T) {
	t.Setenv("AUTH_DISABLED", "true")
	_, err := execute(t, "token", "--subject", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestLoadServeConfig_FlagsWin(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AI_TIMEOUT", "45")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9100, "default_template": "classic"}`), 0644))

	serveConfigFile, servePort = path, 9200
	t.Cleanup(func() { serveConfigFile, servePort = "", 0 })

	cfg, err := loadServeConfig()
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "45", cfg.AITimeout)
	assert.Equal(t, "classic", cfg.DefaultTemplate)
	assert.Equal(t, config.DefaultMaxUploadBytes, cfg.MaxUploadBytes)
}
