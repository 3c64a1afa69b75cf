// Package state stores the client's persisted key/value state (auth token,
// user profile, preferences) in the local SQLite database.
package state
