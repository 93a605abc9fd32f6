package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// questionSchema is the shape every generated question must have.
const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "answer"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string"}
    },
    "answer": {"type": "string"}
  }
}`

func compileSchema(src string) (*jsonschema.Schema, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return rs, nil
}

// validate returns an error listing every schema violation in data.
func validate(ctx context.Context, rs *jsonschema.Schema, data []byte) error {
	verrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.PropertyPath)
			sb.WriteString(": ")
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("response does not match schema: %s", sb.String())
	}
	return nil
}
