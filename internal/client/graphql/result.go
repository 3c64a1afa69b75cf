package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is the success half of every Execute call. Data is the raw "data"
// member; it is the JSON literal null when the server returned null.
type Result struct {
	Data json.RawMessage
}

// IsNull reports whether the server returned null data.
func (r Result) IsNull() bool {
	return len(r.Data) == 0 || bytes.Equal(bytes.TrimSpace(r.Data), []byte("null"))
}

// Field returns the raw JSON of one top-level field of data.
func (r Result) Field(name string) (json.RawMessage, error) {
	if r.IsNull() {
		return nil, newError(KindMalformedResponse, "response has no data for %q", name)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Data, &fields); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Message: "malformed response data", Err: err}
	}
	raw, ok := fields[name]
	if !ok {
		return nil, newError(KindMalformedResponse, "response is missing field %q", name)
	}
	return raw, nil
}

// Decode unmarshals one top-level field of data into v.
func (r Result) Decode(name string, v any) error {
	raw, err := r.Field(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Kind: KindMalformedResponse, Message: fmt.Sprintf("cannot decode %q", name), Err: err}
	}
	return nil
}

// MutationResult is the {success, message} envelope every mutation returns.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeMutation applies the {success, message} convention to the named
// mutation field. An unsuccessful mutation becomes a KindGraphQL error whose
// message is the server's message verbatim. When out is non-nil the whole
// payload object is also decoded into it.
func DecodeMutation(r Result, field string, out any) (MutationResult, error) {
	raw, err := r.Field(field)
	if err != nil {
		return MutationResult{}, err
	}

	var mr MutationResult
	if err := json.Unmarshal(raw, &mr); err != nil {
		return MutationResult{}, &Error{Kind: KindMalformedResponse, Message: fmt.Sprintf("cannot decode %q", field), Err: err}
	}
	if !mr.Success {
		msg := mr.Message
		if msg == "" {
			msg = field + " failed"
		}
		return mr, &Error{Kind: KindGraphQL, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return mr, &Error{Kind: KindMalformedResponse, Message: fmt.Sprintf("cannot decode %q", field), Err: err}
		}
	}
	return mr, nil
}
