// Package services contains the application services of the cinema client.
//
// AuthService owns the credential lifecycle (login, register, logout,
// token verification, start-up restore). CatalogService fetches entity
// lists and normalizes them into typed models, falling back from
// authenticated to public queries where the gateway offers both.
// AdminService wraps the create, update and delete mutations of
// admin-managed entities.
//
// Services talk to the gateway only through an Executor, which
// *graphql.Client implements, so tests can substitute a fake.
package services
