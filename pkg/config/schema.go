package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaJSON constrains the shape and ranges of a sweep config file.
// Unknown top-level keys are rejected so typos surface at validate time
// instead of silently falling back to defaults.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "project": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "entry_points": {"type": "array", "items": {"type": "string"}},
        "test_dirs": {"type": "array", "items": {"type": "string"}},
        "example_dirs": {"type": "array", "items": {"type": "string"}}
      }
    },
    "thresholds": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "asset_critical_ratio": {"type": "number", "minimum": 0, "maximum": 1},
        "total_critical_ratio": {"type": "number", "minimum": 0, "maximum": 1},
        "domain_caution_count": {"type": "integer", "minimum": 0}
      }
    },
    "exclude": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "patterns": {"type": "array", "items": {"type": "string"}},
        "dirs": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "allowlist": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "functions": {"type": "array", "items": {"type": "string"}},
        "function_prefixes": {"type": "array", "items": {"type": "string"}},
        "packages": {"type": "array", "items": {"type": "string"}},
        "protected_patterns": {"type": "array", "items": {"type": "string"}}
      }
    },
    "cache": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "dir": {"type": "string"},
        "ttl": {"type": "integer", "minimum": 0}
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"type": "string", "enum": ["text", "json", "markdown", "toon"]},
        "color": {"type": "boolean"}
      }
    }
  }
}`

// Validate checks the config file at path against the schema and then
// confirms it loads cleanly. It returns nil when the file is valid.
func Validate(path string) error {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = koanfjson.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	// Round-trip through JSON so the instance uses the numeric types
	// the validator expects regardless of the source format.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return fmt.Errorf("encoding config %s: %w", path, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding config %s: %w", path, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	if _, err := Load(path); err != nil {
		return err
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("sweep://config.schema.json", doc); err != nil {
		return nil, fmt.Errorf("registering config schema: %w", err)
	}
	sch, err := c.Compile("sweep://config.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return sch, nil
}
