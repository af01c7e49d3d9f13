package interview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

type envelope struct {
	Message        *string         `json:"message"`
	ExtractedData  json.RawMessage `json:"extractedData"`
	IsStepComplete *bool           `json:"isStepComplete"`
	NextStep       *string         `json:"nextStep"`
}

// decodeResult parses a model reply. Anything that is not exactly
// {message: string, extractedData: object|null, isStepComplete: bool,
// nextStep: step|null} is rejected.
func decodeResult(raw string) (Result, error) {
	body := jsonObject(stripFences(raw))
	if body == "" {
		return Result{}, errors.New("reply is not a json object")
	}

	var env envelope
	if err := strictUnmarshal([]byte(body), &env); err != nil {
		return Result{}, fmt.Errorf("decode reply: %w", err)
	}
	if env.Message == nil || strings.TrimSpace(*env.Message) == "" {
		return Result{}, errors.New("reply has no message")
	}
	if env.IsStepComplete == nil {
		return Result{}, errors.New("reply has no isStepComplete")
	}

	res := Result{Message: *env.Message, IsStepComplete: *env.IsStepComplete}

	if env.NextStep != nil {
		step := session.Step(*env.NextStep)
		if !step.Valid() {
			return Result{}, fmt.Errorf("reply has unknown nextStep %q", *env.NextStep)
		}
		res.NextStep = &step
	}

	data := bytes.TrimSpace(env.ExtractedData)
	if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if data[0] != '{' {
			return Result{}, errors.New("extractedData must be an object or null")
		}
		var p resume.Patch
		if err := strictUnmarshal(data, &p); err != nil {
			return Result{}, fmt.Errorf("decode extractedData: %w", err)
		}
		res.Data = &p
	}
	return res, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after json object")
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// jsonObject returns the outermost {...} span of s, or "".
func jsonObject(s string) string {
	i := strings.Index(s, "{")
	j := strings.LastIndex(s, "}")
	if i < 0 || j <= i {
		return ""
	}
	return s[i : j+1]
}
