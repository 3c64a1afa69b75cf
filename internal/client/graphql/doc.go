// Package graphql is the single doorway between the cinema client and the
// GraphQL gateway.
//
// Every operation goes through (*Client).Execute, which POSTs one
// {query, variables} envelope, attaches a bearer token when the operation
// requires it, and folds every failure shape the gateway can produce
// (transport errors, HTML error pages, non-2xx statuses, empty or malformed
// bodies, GraphQL "errors" arrays) into a *Error with a Kind. Callers never
// inspect raw responses; they either get a Result or an error.
//
// # Error Handling
//
// Kinds are matched with errors.Is against the package sentinels:
//
//	res, err := c.Execute(ctx, q, vars, true)
//	switch {
//	case errors.Is(err, graphql.ErrAuthenticationRequired):
//	    // prompt for login
//	case errors.Is(err, graphql.ErrNetworkUnavailable):
//	    // offer retry
//	}
//
// The client never retries and never touches stored credentials.
package graphql
