// Package decode recovers structured or textual payloads from agent-runtime
// response bytes. The boundary may legally return a single JSON document or
// a server-sent-event style stream of JSON lines; the decoder tries both so
// callers never need to know which in advance. Unparseable data is surfaced
// as a text result, never as an error.
package decode

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Kind tags a decoded result.
type Kind string

const (
	// KindEmpty marks a zero-length response.
	KindEmpty Kind = "empty"
	// KindError marks a JSON object carrying an "error" key.
	KindError Kind = "error"
	// KindStructured marks a JSON object or array payload.
	KindStructured Kind = "structured"
	// KindText marks a plain text payload.
	KindText Kind = "text"
)

// Result is the tagged outcome of decoding a response payload.
type Result struct {
	Kind    Kind
	Message string // error message or text content
	Data    any    // parsed value for structured results
}

// ssePrefix is stripped from stream lines before JSON parsing.
const ssePrefix = "data: "

// Decode classifies raw response bytes. Strategies in priority order, first
// match wins:
//
//  1. Zero-length input -> empty.
//  2. Whole input parses as one JSON document -> classify it.
//  3. Newline-split stream: per non-blank line, strip an optional "data: "
//     prefix, parse independently, classify the first line that yields a
//     classification.
//  4. Fall back to text with the entire raw input.
func Decode(raw []byte) Result {
	if len(raw) == 0 {
		return Result{Kind: KindEmpty}
	}

	s := string(raw)

	if gjson.Valid(s) {
		if res, ok := classify(gjson.Parse(s)); ok {
			return res
		}
	}

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, ssePrefix)
		if !gjson.Valid(line) {
			continue
		}
		if res, ok := classify(gjson.Parse(line)); ok {
			return res
		}
	}

	return Result{Kind: KindText, Message: s}
}

// classify maps a parsed JSON value onto a Result. Objects with an "error"
// key become errors, objects and arrays become structured payloads, bare
// strings become text. Other scalar documents (numbers, booleans, null) stay
// unclassified so outer strategies can keep looking.
func classify(v gjson.Result) (Result, bool) {
	switch {
	case v.IsObject():
		if errVal := v.Get("error"); errVal.Exists() {
			return Result{Kind: KindError, Message: errVal.String()}, true
		}
		return Result{Kind: KindStructured, Data: v.Value()}, true
	case v.IsArray():
		return Result{Kind: KindStructured, Data: v.Value()}, true
	case v.Type == gjson.String:
		return Result{Kind: KindText, Message: v.String()}, true
	default:
		return Result{}, false
	}
}
