// Package cli provides the interactive cinema booking terminal client.
//
// It wires configuration, the local state database, the GraphQL gateway
// client and the services, then runs a REPL that plays the role of the web
// page: it loads entity lists, keeps per-list filter/sort/page state and
// prints the visible slice after every change.
//
// Key features:
//   - Register / Login / Admin login / Logout / Verify
//   - list <entity> with filter, unfilter, sort, page, next, prev, reload
//   - Admin create, update and delete of catalog entities
//   - Online/offline status from a background ping watcher
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
