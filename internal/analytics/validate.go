package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// The upstream workspace is schemaless from our point of view, so record
// arrays are shape-checked before decoding. A wrong type (a string where
// a number is expected) is a reportable error, not a silently dropped
// record; missing optional fields are fine.

const questionsSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "created_at", "status"],
    "properties": {
      "id": {"type": "integer"},
      "created_at": {"type": "number"},
      "answered_at": {"type": ["number", "null"]},
      "status": {"type": "string"},
      "price_cents": {"type": "integer", "minimum": 0},
      "sla_hours_snapshot": {"type": ["number", "null"]},
      "pricing_status": {"type": "string"},
      "hidden": {"type": "boolean"},
      "question_tier": {"type": "string"}
    }
  }
}`

const answersSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "question_id"],
    "properties": {
      "id": {"type": "integer"},
      "question_id": {"type": "integer"},
      "rating": {"type": ["integer", "null"]},
      "feedback_text": {"type": "string"},
      "feedback_at": {"type": ["number", "null"]},
      "created_at": {"type": "number"}
    }
  }
}`

var (
	questionsSchema = mustCompileSchema(questionsSchemaJSON)
	answersSchema   = mustCompileSchema(answersSchemaJSON)
)

func mustCompileSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile embedded schema: %v", err))
	}
	return rs
}

// ValidationError reports upstream payloads whose shape does not match the
// record contract. It is surfaced to the API layer rather than swallowed.
type ValidationError struct {
	Resource string
	Issues   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Resource, strings.Join(e.Issues, "; "))
}

// ValidateQuestionsPayload checks a raw question array against the record
// schema. Returns *ValidationError on shape violations.
func ValidateQuestionsPayload(ctx context.Context, raw []byte) error {
	return validate(ctx, questionsSchema, "questions", raw)
}

// ValidateAnswersPayload checks a raw answer array against the record
// schema. Returns *ValidationError on shape violations.
func ValidateAnswersPayload(ctx context.Context, raw []byte) error {
	return validate(ctx, answersSchema, "answers", raw)
}

func validate(ctx context.Context, rs *jsonschema.Schema, resource string, raw []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return &ValidationError{Resource: resource, Issues: []string{err.Error()}}
	}
	if len(keyErrs) == 0 {
		return nil
	}
	issues := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		issues = append(issues, fmt.Sprintf("%s: %s", ke.PropertyPath, ke.Message))
	}
	return &ValidationError{Resource: resource, Issues: issues}
}
