package graphql

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed operation.
type Kind string

const (
	KindAuthenticationRequired Kind = "authentication_required"
	KindInsufficientPrivilege  Kind = "insufficient_privilege"
	KindNetworkUnavailable     Kind = "network_unavailable"
	KindHTTP                   Kind = "http_error"
	KindServerRendered         Kind = "server_rendered_error"
	KindEmptyResponse          Kind = "empty_response"
	KindMalformedResponse      Kind = "malformed_response"
	KindGraphQL                Kind = "graphql_error"
	KindInvalidConfiguration   Kind = "invalid_configuration"
)

// snippetLimit bounds the body excerpt carried by HTTP errors.
const snippetLimit = 200

// networkMessage is shown to users for every transport failure.
const networkMessage = "unable to reach the server"

var (
	ErrAuthenticationRequired = &Error{Kind: KindAuthenticationRequired}
	ErrInsufficientPrivilege  = &Error{Kind: KindInsufficientPrivilege}
	ErrNetworkUnavailable     = &Error{Kind: KindNetworkUnavailable}
	ErrHTTP                   = &Error{Kind: KindHTTP}
	ErrServerRendered         = &Error{Kind: KindServerRendered}
	ErrEmptyResponse          = &Error{Kind: KindEmptyResponse}
	ErrMalformedResponse      = &Error{Kind: KindMalformedResponse}
	ErrGraphQL                = &Error{Kind: KindGraphQL}
	ErrInvalidConfiguration   = &Error{Kind: KindInvalidConfiguration}
)

// Location points into the query text, as reported by the server.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ErrorItem is one entry of a GraphQL "errors" array.
type ErrorItem struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// Error is the failure half of every Execute call.
type Error struct {
	Kind    Kind
	Message string

	// Status and Snippet are set for KindHTTP and KindServerRendered.
	Status  int
	Snippet string

	// Errors holds the server-reported items for KindGraphQL.
	Errors []ErrorItem

	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindAuthenticationRequired:
		return "authentication required"
	case KindInsufficientPrivilege:
		return "insufficient privilege"
	case KindNetworkUnavailable:
		return networkMessage
	case KindHTTP:
		return fmt.Sprintf("http error %d", e.Status)
	case KindServerRendered:
		return "server returned an HTML page instead of JSON"
	case KindEmptyResponse:
		return "empty response from server"
	case KindMalformedResponse:
		return "malformed response from server"
	case KindGraphQL:
		return "graphql error"
	case KindInvalidConfiguration:
		return "invalid configuration"
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the package sentinels work
// with errors.Is regardless of message or status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func httpError(status int, body string) *Error {
	s := truncate(body, snippetLimit)
	return &Error{
		Kind:    KindHTTP,
		Status:  status,
		Snippet: s,
		Message: fmt.Sprintf("http error %d: %s", status, s),
	}
}

func graphQLError(items []ErrorItem) *Error {
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		msgs = append(msgs, it.Message)
	}
	return &Error{Kind: KindGraphQL, Message: strings.Join(msgs, "; "), Errors: items}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// avoid cutting a multi-byte rune in half
	cut := n
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
