// Package manifest loads bridge manifests and resolves them into the
// signature descriptors consumed by the generators.
package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.schema.json
var rawSchema string

var schema = jsonschema.MustCompileString("manifest.schema.json", rawSchema)

type OwnedArg string

const (
	OwnedArgDisabled         OwnedArg = "disabled"
	OwnedArgEnabled          OwnedArg = "enabled"
	OwnedArgEnabledUnchecked OwnedArg = "enabled_unchecked"
)

// Allowed reports whether values of the type may be passed by value.
func (o OwnedArg) Allowed() bool {
	return o == OwnedArgEnabled || o == OwnedArgEnabledUnchecked
}

type Manifest struct {
	Prefix string  `yaml:"prefix"`
	Blocks []Block `yaml:"blocks"`
}

// Block groups the types and functions implemented by one runtime.
type Block struct {
	Host      string     `yaml:"host"`
	Types     []TypeDecl `yaml:"types"`
	Functions []FuncDecl `yaml:"functions"`
}

type TypeDecl struct {
	Name     string   `yaml:"name"`
	OwnedArg OwnedArg `yaml:"owned_arg"`
}

// FuncDecl declares one bridged function. Sig must be a quoted YAML string
// since parameter lists contain ": ".
type FuncDecl struct {
	Sig          string `yaml:"sig"`
	AssociatedTo string `yaml:"associated_to"`
	Init         bool   `yaml:"init"`
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode validates data against the manifest schema and decodes it.
func Decode(data []byte) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	// Normalize to the value shapes produced by encoding/json.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return &m, nil
}
