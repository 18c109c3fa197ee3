// Package cli provides the interactive book review command-line client.
//
// It wires configuration, local storage, the session store, the API services
// and an interactive REPL. Typical flow: restore the stored credential, show
// the first page of reviews and execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout and account management
//   - Paged review list with show, edit and delete
//   - Catalog search that seeds new review drafts
//   - Draft editing with tags, then save or cancel
//   - Monthly reading statistics and tweet share links
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Service failures are reported through the notification channel, which the
// App prints as "[severity] message" lines.
package cli
