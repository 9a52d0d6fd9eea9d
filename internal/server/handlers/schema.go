package handlers

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/validation"
)

// variantSchemas describe the known core-field block of each built-in
// category. A payload may only carry the block matching its own category.
var variantSchemas = map[string]string{
	models.CategoryCharacter: `"character": {
		"type": "object",
		"properties": {
			"aliases": {"type": "array", "items": {"type": "string"}},
			"species": {"type": "string"},
			"occupation": {"type": "string"},
			"biography": {"type": "string"}
		},
		"additionalProperties": false
	}`,
	models.CategoryLocation: `"location": {
		"type": "object",
		"properties": {
			"region": {"type": "string"},
			"population": {"type": "string"},
			"description": {"type": "string"}
		},
		"additionalProperties": false
	}`,
	models.CategoryFaction: `"faction": {
		"type": "object",
		"properties": {
			"leader": {"type": "string"},
			"goals": {"type": "string"},
			"members": {"type": "array", "items": {"type": "string"}}
		},
		"additionalProperties": false
	}`,
	models.CategoryCustom: ``,
}

const schemaTemplate = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["category", "name"],
	"properties": {
		"category": {"const": %q},
		"name": {"type": "string", "minLength": 1, "maxLength": %d},
		"prompts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "answer"],
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"answer": {"type": "string"}
				},
				"additionalProperties": false
			}
		},
		"extra": {"type": "object"}%s
	},
	"additionalProperties": false
}`

// PayloadValidator checks pushed payloads against the per-category JSON
// schema. Schema failures turn a push item into a rejected outcome, never
// a transport error, so one malformed item cannot stall a batch.
type PayloadValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewPayloadValidator compiles the category schemas.
func NewPayloadValidator() (*PayloadValidator, error) {
	schemas := make(map[string]*gojsonschema.Schema, len(variantSchemas))
	for category, variant := range variantSchemas {
		if variant != "" {
			variant = ",\n" + variant
		}
		doc := fmt.Sprintf(schemaTemplate, category, validation.MaxElementNameLen, variant)
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", category, err)
		}
		schemas[category] = schema
	}
	return &PayloadValidator{schemas: schemas}, nil
}

// Validate returns a human-readable reason when the payload does not conform
// to its category schema.
func (v *PayloadValidator) Validate(payload models.Payload) error {
	schema, ok := v.schemas[payload.Category]
	if !ok {
		return validation.ValidateCategory(payload.Category)
	}

	doc, err := models.PayloadMap(payload)
	if err != nil {
		return fmt.Errorf("failed to normalize payload: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return fmt.Errorf("payload does not match %s schema: %s", payload.Category, strings.Join(reasons, "; "))
	}
	return nil
}
