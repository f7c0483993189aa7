package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// definitionsSchema constrains external template definition files. Pattern
// syntax is checked later by compileDefinition; the schema catches shape
// problems (missing ids, bad field names, wrong types) with better messages.
const definitionsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["id", "display_name", "patterns"],
    "properties": {
      "id": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
      "display_name": {"type": "string", "minLength": 1},
      "po_pattern": {"type": "string", "minLength": 1},
      "keywords": {"type": "array", "items": {"type": "string", "minLength": 1}},
      "email_domains": {"type": "array", "items": {"type": "string", "minLength": 3}},
      "patterns": {
        "type": "array",
        "items": {
          "type": "object",
          "additionalProperties": false,
          "required": ["field", "pattern"],
          "properties": {
            "field": {"type": "string", "minLength": 1},
            "pattern": {"type": "string", "minLength": 1},
            "priority": {"type": "integer", "minimum": 0}
          }
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("templates.schema.json", definitionsSchema)

// LoadDefinitions reads and validates a JSON file of extra builder
// definitions. Invalid configuration fails loudly here, at startup, rather
// than as silent misdetection later.
func LoadDefinitions(path string) ([]RawDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("templates file %s: decode: %w", path, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("templates file %s: %w", path, err)
	}

	var raws []RawDefinition
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("templates file %s: %w", path, err)
	}
	return raws, nil
}
