package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

const classifySchema = `{
  "type": "object",
  "required": ["category", "priority"],
  "properties": {
    "category": {"enum": ["blood_request", "elder_support", "complaint", "emergency", "general_inquiry"]},
    "priority": {"enum": ["urgent", "high", "medium", "low"]},
    "response": {"type": "string"}
  }
}`

const extractSchema = `{
  "type": "object",
  "required": ["extractedInfo"],
  "properties": {
    "extractedInfo": {
      "type": "object",
      "properties": {
        "bloodType": {"type": ["string", "null"], "pattern": "^(A|B|AB|O)[+-]$"},
        "unitsNeeded": {"type": ["string", "integer", "null"], "pattern": "^[0-9]{1,2}$", "minimum": 1, "maximum": 99},
        "age": {"type": ["string", "integer", "null"], "pattern": "^[0-9]{1,3}$", "minimum": 1, "maximum": 130}
      },
      "additionalProperties": {"type": ["string", "number", "null"]}
    },
    "missingRequired": {"type": "array", "items": {"type": "string"}},
    "needsMoreInfo": {"type": "boolean"},
    "success": {"type": "boolean"},
    "usingFallback": {"type": "boolean"}
  }
}`

const followUpSchema = `{
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {"type": "string", "minLength": 1}
  }
}`

const confirmationSchema = `{
  "type": "object",
  "required": ["response"],
  "properties": {
    "response": {"type": "string", "minLength": 1}
  }
}`

// schemaSet holds the compiled response schemas, one per stage.
type schemaSet struct {
	classify     *gojsonschema.Schema
	extract      *gojsonschema.Schema
	followUp     *gojsonschema.Schema
	confirmation *gojsonschema.Schema
}

func compileSchemas() (schemaSet, error) {
	var (
		set schemaSet
		err error
	)

	for _, s := range []struct {
		name   string
		source string
		target **gojsonschema.Schema
	}{
		{stageClassify, classifySchema, &set.classify},
		{stageExtract, extractSchema, &set.extract},
		{stageFollowUp, followUpSchema, &set.followUp},
		{stageConfirmation, confirmationSchema, &set.confirmation},
	} {
		*s.target, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(s.source))
		if err != nil {
			return schemaSet{}, fmt.Errorf("failed to compile %s schema: %w", s.name, err)
		}
	}

	return set, nil
}

// validateJSON checks a payload against a schema, wrapping every violation
// in ErrInvalidAugmentation.
func validateJSON(schema *gojsonschema.Schema, payload string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrInvalidAugmentation, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}

	return fmt.Errorf("%w: %s", coreerrors.ErrInvalidAugmentation, strings.Join(problems, "; "))
}
