package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/dmitrijs2005/cinemaclient/internal/client/client"
	"github.com/dmitrijs2005/cinemaclient/internal/client/credentials"
	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- fake executor ----

type call struct {
	operation string
	vars      map[string]any
	auth      bool
}

type handler func(vars map[string]any, auth bool) (graphql.Result, error)

// fakeExec answers operations by name and records every call.
type fakeExec struct {
	mu       sync.Mutex
	calls    []call
	handlers map[string]handler
	// block, when set, is waited on before answering.
	block chan struct{}
}

func newFakeExec() *fakeExec {
	return &fakeExec{handlers: map[string]handler{}}
}

func (f *fakeExec) on(op string, h handler) *fakeExec {
	f.handlers[op] = h
	return f
}

func (f *fakeExec) Execute(ctx context.Context, query string, vars map[string]any, auth bool) (graphql.Result, error) {
	req, err := graphql.NewRequest(query, vars)
	if err != nil {
		return graphql.Result{}, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, call{operation: req.Operation(), vars: vars, auth: auth})
	h := f.handlers[req.Operation()]
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if h == nil {
		return graphql.Result{}, &graphql.Error{Kind: graphql.KindGraphQL, Message: "unexpected operation " + req.Operation()}
	}
	return h(vars, auth)
}

func (f *fakeExec) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.operation
	}
	return out
}

func (f *fakeExec) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func data(t *testing.T, s string) graphql.Result {
	t.Helper()
	require.True(t, json.Valid([]byte(s)), s)
	return graphql.Result{Data: json.RawMessage(s)}
}

func reply(t *testing.T, s string) handler {
	res := data(t, s)
	return func(map[string]any, bool) (graphql.Result, error) { return res, nil }
}

func fail(err error) handler {
	return func(map[string]any, bool) (graphql.Result, error) { return graphql.Result{}, err }
}

// ---- store ----

func newStore(t *testing.T) *credentials.Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return credentials.NewStore(db)
}

func signIn(t *testing.T, s *credentials.Store, role models.Role) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), models.Credential{
		Token: "tok",
		User:  &models.User{ID: "u1", Email: "a@b.c", Role: role},
	}))
}
