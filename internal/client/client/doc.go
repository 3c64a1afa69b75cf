// Package client bootstraps the cinema client's local persistence.
//
// InitDatabase opens the SQLite file that stands in for browser local
// storage and applies the embedded goose migrations (RunMigrations). The
// returned *sql.DB is shared by the state repository and the credential
// store.
package client
