package prediction

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

var (
	errEmptyResponse  = errors.New("model returned no content")
	errSchemaMismatch = errors.New("response does not match the output schema")
)

var jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseResult turns raw model output into a validated Result.
func parseResult(content string) (Result, error) {
	body := strings.TrimSpace(content)
	if m := jsonBlockPattern.FindStringSubmatch(body); m != nil {
		body = m[1]
	}
	if body == "" {
		return Result{}, &Failure{Kind: FailureEmptyResponse, Err: errEmptyResponse}
	}

	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return Result{}, &Failure{Kind: FailureParse, Err: err}
	}
	if !jsonschema.Validate(Schema(), data) {
		return Result{}, &Failure{Kind: FailureSchema, Err: errSchemaMismatch}
	}

	var r Result
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Result{}, &Failure{Kind: FailureSchema, Err: err}
	}
	if err := r.Validate(); err != nil {
		return Result{}, &Failure{Kind: FailureSchema, Err: err}
	}
	return r, nil
}
