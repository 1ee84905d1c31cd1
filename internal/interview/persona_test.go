package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPersonas(t *testing.T) {
	reg := DefaultPersonas()
	assert.Equal(t, []string{"behavioral", "hr", "system-design", "technical"}, reg.IDs())

	for _, p := range reg.List() {
		assert.NotEmpty(t, p.Name, p.ID)
		assert.NotEmpty(t, p.Instruction, p.ID)
	}

	p, err := reg.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPersona, p.ID)

	_, err = reg.Get("pirate")
	var pnf *PersonaNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "pirate", pnf.ID)
}

func TestNewPersonaRegistry_Invalid(t *testing.T) {
	ok := Persona{ID: "a", Name: "A", Instruction: "Ask things."}
	tests := []struct {
		name     string
		personas []Persona
		context  string
	}{
		{name: "empty", personas: nil, context: "{{.Resume}}"},
		{name: "empty id", personas: []Persona{{Name: "A", Instruction: "x"}}, context: "{{.Resume}}"},
		{name: "no name", personas: []Persona{{ID: "a", Instruction: "x"}}, context: "{{.Resume}}"},
		{name: "no instruction", personas: []Persona{{ID: "a", Name: "A", Instruction: " "}}, context: "{{.Resume}}"},
		{name: "duplicate", personas: []Persona{ok, ok}, context: "{{.Resume}}"},
		{name: "context without placeholder", personas: []Persona{ok}, context: "resume:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPersonaRegistry(tt.personas, "", tt.context)
			assert.Error(t, err)
		})
	}
}

func TestSystemInstruction(t *testing.T) {
	reg, err := NewPersonaRegistry(
		[]Persona{{ID: "a", Name: "A", Instruction: "You interview people."}},
		"Be brief.",
		"Resume:\n{{.Resume}}",
	)
	require.NoError(t, err)
	p, _ := reg.Get("a")

	assert.Equal(t, "You interview people.\n\nBe brief.\n\nResume:\nName: Ada", reg.SystemInstruction(p, " Name: Ada "))
	assert.Equal(t, "You interview people.\n\nBe brief.", reg.SystemInstruction(p, ""))
}
