package schema

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"shelfkeeper/internal/domain/apperr"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://shelfkeeper.local/schemas/"

// Structural schemas shipped with the module.
const (
	RegisterSchema        = "register.json"
	VerifyQuestionsSchema = "verify-security-questions.json"
	ResetPasswordSchema   = "reset-password.json"
)

// Structure checks member types and shapes with JSON Schema. It is layered
// on top of the field-set check, never a replacement for it.
type Structure struct {
	schemas map[string]*jsonschema.Schema
}

// NewStructure compiles the embedded schemas named in names.
func NewStructure(names ...string) (*Structure, error) {
	c := jsonschema.NewCompiler()
	for _, name := range names {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}
		if err := c.AddResource(baseURL+name, doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	s := &Structure{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		sch, err := c.Compile(baseURL + name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		s.schemas[name] = sch
	}
	return s, nil
}

// MustStructure is NewStructure for package-level initialisation.
func MustStructure(names ...string) *Structure {
	s, err := NewStructure(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Check validates payload against the named schema.
func (s *Structure) Check(name string, payload []byte) error {
	sch, ok := s.schemas[name]
	if !ok {
		return fmt.Errorf("schema %q is not loaded", name)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return apperr.Invalid(fmt.Errorf("payload is not JSON: %w", err))
	}
	if err := sch.Validate(inst); err != nil {
		return apperr.Invalid(err)
	}
	return nil
}
