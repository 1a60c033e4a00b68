// Package cli is the interactive storefront client.
//
// It wires configuration, the users service client and the session slot,
// and serves a small REPL. The login screen drives a verifier.Verifier: the
// user types an email and a password, the pair is checked against the
// record store and, on success, the identity is published to the session
// slot and the client moves on to the inventory screen.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
