package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"checklist/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const itemsSchemaURL = "https://checklist.local/schema/items.json"

const itemsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "status"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "status": {"type": "boolean"}
    }
  }
}`

var itemsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(itemsSchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(itemsSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(itemsSchemaURL)
})

// DecodeItems parses a persisted item list, rejecting documents that do not
// match the {id, title, status} record layout.
func DecodeItems(data []byte) ([]model.Item, error) {
	sch, err := itemsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile items schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("invalid items: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// EncodeItems serializes items as a JSON array of {id, title, status}.
func EncodeItems(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	return json.Marshal(items)
}
