package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"
)

var (
	ErrInvalidJSON = errors.New("feedback is not valid JSON")
	ErrNotObject   = errors.New("feedback must be a JSON object")
)

// Feedback is one freeform JSON object exactly as the client sent it.
// Field order is kept; only insignificant whitespace is dropped.
type Feedback json.RawMessage

// ParseFeedback checks that data holds a single JSON object and returns it compacted.
func ParseFeedback(data []byte) (Feedback, error) {
	if !utf8.Valid(data) || !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, ErrInvalidJSON
	}
	return Feedback(buf.Bytes()), nil
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return f, nil
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	if f == nil {
		return errors.New("model.Feedback: UnmarshalJSON on nil pointer")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*f = Feedback(buf.Bytes())
	return nil
}

func (f Feedback) String() string {
	return string(f)
}
