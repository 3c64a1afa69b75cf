package services

import (
	"context"

	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/models"
)

// Executor runs one GraphQL operation.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any, requireAuth bool) (graphql.Result, error)
}

// CredentialStore persists the signed-in state. *credentials.Store
// implements it.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
	Load(ctx context.Context) (models.Credential, error)
	Save(ctx context.Context, c models.Credential) error
	SetRememberMe(ctx context.Context, remember bool) error
	Clear(ctx context.Context) error
	ClearToken(ctx context.Context) error
}
