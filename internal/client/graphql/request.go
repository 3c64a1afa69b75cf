package graphql

import (
	"maps"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Request is the wire envelope POSTed to the gateway.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`

	operation string
	kind      ast.Operation
}

// NewRequest validates query text and builds an envelope. Variables are
// copied so later changes by the caller do not leak into the request.
func NewRequest(query string, variables map[string]any) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, newError(KindInvalidConfiguration, "invalid configuration: empty query")
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "request", Input: query})
	if err != nil {
		return Request{}, &Error{Kind: KindInvalidConfiguration, Message: "invalid configuration: " + err.Error(), Err: err}
	}
	if len(doc.Operations) == 0 {
		return Request{}, newError(KindInvalidConfiguration, "invalid configuration: query has no operation")
	}

	vars := maps.Clone(variables)
	if vars == nil {
		vars = map[string]any{}
	}

	op := doc.Operations[0]
	return Request{
		Query:     query,
		Variables: vars,
		operation: operationName(op),
		kind:      op.Operation,
	}, nil
}

// Operation names the request for logs and metrics: the declared operation
// name, or the first root field when the operation is anonymous.
func (r Request) Operation() string { return r.operation }

// IsMutation reports whether the request is a mutation.
func (r Request) IsMutation() bool { return r.kind == ast.Mutation }

func operationName(op *ast.OperationDefinition) string {
	if op.Name != "" {
		return op.Name
	}
	for _, sel := range op.SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			return f.Name
		}
	}
	return "anonymous"
}
