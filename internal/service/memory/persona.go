package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sandevgo/saya/configs"
	"github.com/sandevgo/saya/internal/core"
)

const (
	personaFile      = "PERSONA.md"
	ownerPersonaFile = "OWNER.md"
)

// Persona is the personality text placed at the head of every prompt.
// Owner is appended only when talking to the privileged user.
type Persona struct {
	Base  string
	Owner string
}

// DefaultPersona returns the personality embedded in the binary.
func DefaultPersona() (Persona, error) {
	base, err := configs.FS.ReadFile(personaFile)
	if err != nil {
		return Persona{}, fmt.Errorf("read embedded %s: %w", personaFile, err)
	}
	owner, err := configs.FS.ReadFile(ownerPersonaFile)
	if err != nil {
		return Persona{}, fmt.Errorf("read embedded %s: %w", ownerPersonaFile, err)
	}
	return Persona{
		Base:  strings.TrimSpace(string(base)),
		Owner: strings.TrimSpace(string(owner)),
	}, nil
}

// LoadPersona prefers files in the runtime directory and falls back to the
// embedded defaults for whichever file is missing or empty.
func LoadPersona(cfg core.PersonaConfig) (Persona, error) {
	p, err := DefaultPersona()
	if err != nil {
		return Persona{}, err
	}

	readFile := func(path string) (string, error) {
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(content)), nil
	}

	base, err := readFile(cfg.GetPersonaPath())
	if err != nil {
		return Persona{}, fmt.Errorf("read persona: %w", err)
	}
	if base != "" {
		p.Base = base
	}

	owner, err := readFile(cfg.GetOwnerPersonaPath())
	if err != nil {
		return Persona{}, fmt.Errorf("read owner persona: %w", err)
	}
	if owner != "" {
		p.Owner = owner
	}
	return p, nil
}
