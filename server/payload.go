package server

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMissingPrompt reports an inbound payload whose resolved prompt is
// missing or empty. A user-facing configuration error: no execution is
// attempted.
var ErrMissingPrompt = errors.New("invalid payload: a non-empty 'prompt' is required")

// ResolvePrompt extracts the user prompt from an inbound invocation payload.
// Resolution order:
//
//  1. An "input" object -> its "prompt" field.
//  2. An "input" string -> JSON-decode it and read "prompt"; if that fails,
//     the whole string is the prompt.
//  3. Otherwise the top-level "prompt" field.
func ResolvePrompt(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", ErrMissingPrompt
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", ErrMissingPrompt
	}

	prompt := ""
	if input := doc.Get("input"); input.Exists() {
		switch {
		case input.IsObject():
			prompt = input.Get("prompt").String()
		case input.Type == gjson.String:
			inner := input.String()
			if gjson.Valid(inner) && gjson.Parse(inner).IsObject() {
				prompt = gjson.Parse(inner).Get("prompt").String()
			}
			if prompt == "" {
				prompt = inner
			}
		}
	} else {
		prompt = doc.Get("prompt").String()
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrMissingPrompt
	}
	return prompt, nil
}
