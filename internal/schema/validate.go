package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks documents against the compiled schemas.
type Validator struct {
	compiled map[Name]*jsonschema.Schema
}

// NewValidator compiles every registered schema.
func NewValidator() (*Validator, error) {
	schemas, err := All()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	for _, s := range schemas {
		if err := compiler.AddResource(resourceURL(s.Name), bytes.NewReader(s.Source)); err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", s.Name, err)
		}
	}

	compiled := make(map[Name]*jsonschema.Schema, len(schemas))
	for _, s := range schemas {
		c, err := compiler.Compile(resourceURL(s.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", s.Name, err)
		}
		compiled[s.Name] = c
	}
	return &Validator{compiled: compiled}, nil
}

// Validate decodes data and checks it against the named schema.
func (v *Validator) Validate(name Name, data []byte) error {
	s, ok := v.compiled[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode %s document for validation: %w", name, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s document does not match schema: %w", name, err)
	}
	return nil
}

func resourceURL(n Name) string {
	return string(n) + ".json"
}
