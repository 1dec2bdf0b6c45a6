package engine

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/entity"
)

// requestSchema constrains the wire form of a classify-and-extract request.
// At least one of subject and body must be present; anything unknown is
// rejected rather than silently dropped.
const requestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "subject": {"type": "string"},
    "sender": {"type": "string"},
    "body": {"type": "string"},
    "reference_date": {"type": "string"},
    "scanning_period_hint": {"type": "string"}
  },
  "anyOf": [
    {"required": ["subject"]},
    {"required": ["body"]}
  ],
  "additionalProperties": false
}`

var compiledRequestSchema = jsonschema.MustCompileString("request.json", requestSchema)

// ParseRequest validates one raw JSON request and decodes it. All failures
// surface as malformed-input errors so transports can map them uniformly.
func ParseRequest(raw []byte) (entity.RawMessage, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.RawMessage{}, common.NewAppError(common.CodeMalformedInput, "request is not valid JSON", common.ErrMalformedInput)
	}
	if err := compiledRequestSchema.Validate(doc); err != nil {
		return entity.RawMessage{}, common.NewAppError(common.CodeMalformedInput, "request failed schema validation", err)
	}
	var msg entity.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return entity.RawMessage{}, common.NewAppError(common.CodeMalformedInput, "request does not decode", err)
	}
	return msg, nil
}
