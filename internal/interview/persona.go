package interview

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/prompts"
)

// DefaultPersona is used when a message names no persona.
const DefaultPersona = "technical"

// Persona is an interviewer character with its own system instruction.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Instruction string `json:"-"`
}

// PersonaRegistry holds the personas offered to users.
type PersonaRegistry struct {
	personas map[string]Persona
	ids      []string
	rules    string
	context  string
}

// NewPersonaRegistry validates personas and builds a registry. rules is appended to
// every system instruction; contextTemplate must contain {{.Resume}}.
func NewPersonaRegistry(personas []Persona, rules, contextTemplate string) (*PersonaRegistry, error) {
	if len(personas) == 0 {
		return nil, fmt.Errorf("persona registry is empty")
	}
	if !strings.Contains(contextTemplate, "{{.Resume}}") {
		return nil, fmt.Errorf("resume context template has no {{.Resume}} placeholder")
	}

	reg := &PersonaRegistry{
		personas: make(map[string]Persona, len(personas)),
		rules:    strings.TrimSpace(rules),
		context:  contextTemplate,
	}
	for _, p := range personas {
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("persona with empty id")
		case strings.TrimSpace(p.Name) == "":
			return nil, fmt.Errorf("persona %q has no name", p.ID)
		case strings.TrimSpace(p.Instruction) == "":
			return nil, fmt.Errorf("persona %q has no instruction", p.ID)
		}
		if _, dup := reg.personas[p.ID]; dup {
			return nil, fmt.Errorf("duplicate persona id %q", p.ID)
		}
		reg.personas[p.ID] = p
		reg.ids = append(reg.ids, p.ID)
	}
	sort.Strings(reg.ids)
	return reg, nil
}

var (
	defaultRegistry     *PersonaRegistry
	defaultRegistryOnce sync.Once
)

// DefaultPersonas returns the built-in persona registry loaded from the embedded
// interview prompts. It panics if the prompt file is incomplete.
func DefaultPersonas() *PersonaRegistry {
	defaultRegistryOnce.Do(func() {
		builtin := []struct{ id, name string }{
			{"technical", "Technical Interviewer"},
			{"behavioral", "Behavioral Interviewer"},
			{"hr", "HR Recruiter"},
			{"system-design", "System Design Interviewer"},
		}
		personas := make([]Persona, 0, len(builtin))
		for _, b := range builtin {
			personas = append(personas, Persona{
				ID:          b.id,
				Name:        b.name,
				Instruction: prompts.MustGet("interview.json", "persona-"+b.id),
			})
		}
		reg, err := NewPersonaRegistry(personas,
			prompts.MustGet("interview.json", "session-rules"),
			prompts.MustGet("interview.json", "resume-context"))
		if err != nil {
			panic(fmt.Sprintf("invalid built-in personas: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Get returns the persona with the given id. An empty id selects DefaultPersona.
func (r *PersonaRegistry) Get(id string) (Persona, error) {
	if id == "" {
		id = DefaultPersona
	}
	p, ok := r.personas[id]
	if !ok {
		return Persona{}, &PersonaNotFoundError{ID: id}
	}
	return p, nil
}

// IDs returns the persona ids, sorted.
func (r *PersonaRegistry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// List returns every persona in id order.
func (r *PersonaRegistry) List() []Persona {
	out := make([]Persona, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.personas[id])
	}
	return out
}

// SystemInstruction combines the persona, the session rules and the resume context.
func (r *PersonaRegistry) SystemInstruction(p Persona, resumeContext string) string {
	parts := []string{strings.TrimSpace(p.Instruction)}
	if r.rules != "" {
		parts = append(parts, r.rules)
	}
	if resumeContext = strings.TrimSpace(resumeContext); resumeContext != "" {
		parts = append(parts, strings.Replace(r.context, "{{.Resume}}", resumeContext, 1))
	}
	return strings.Join(parts, "\n\n")
}
