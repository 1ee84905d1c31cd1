// Package prompts serves the LLM instruction templates for tailoring, import and
// interviews. The templates are JSON objects of key to text, embedded in the binary.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// set is one parsed prompt file.
type set map[string]string

// loaded holds parsed files keyed by name.
var loaded sync.Map

// Get returns the prompt stored under key in the embedded file filename, such as
// "tailoring.json".
func Get(filename, key string) (string, error) {
	s, err := load(filename)
	if err != nil {
		return "", err
	}
	text, ok := s[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return text, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic("failed to load prompt: " + err.Error())
	}
	return text
}

// Format substitutes {{.Key}} placeholders with the matching values in data.
// Placeholders without a value are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{{."+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

var placeholder = regexp.MustCompile(`\{\{\.([^}]*)\}\}`)

// Unfilled lists the placeholder names still present in a formatted prompt.
func Unfilled(prompt string) []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(prompt, -1) {
		names = append(names, m[1])
	}
	return names
}

// List returns the sorted keys of one prompt file.
func List(filename string) ([]string, error) {
	s, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Files returns the names of the embedded prompt files.
func Files() ([]string, error) {
	return fs.Glob(promptFiles, "*.json")
}

// ClearCache forgets every parsed file.
func ClearCache() {
	loaded.Range(func(k, _ any) bool {
		loaded.Delete(k)
		return true
	})
}

func load(filename string) (set, error) {
	if s, ok := loaded.Load(filename); ok {
		return s.(set), nil
	}
	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var s set
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	actual, _ := loaded.LoadOrStore(filename, s)
	return actual.(set), nil
}
