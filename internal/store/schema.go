package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Schema compiles the embedded JSON Schema for a slot kind ("tasks" or "notes").
func Schema(name string) (*jsonschema.Schema, error) {
	path := "schema/" + name + ".json"
	b, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	url := name + ".schema.json"
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	return s, nil
}

// MustSchema is Schema for the embedded files, which are known to compile.
func MustSchema(name string) *jsonschema.Schema {
	s, err := Schema(name)
	if err != nil {
		panic(err)
	}
	return s
}

func validate(s *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
