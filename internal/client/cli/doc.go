// Package cli provides the interactive ReState command-line client.
//
// It wires configuration, the local session store, the Appwrite client and
// the application services, then runs a REPL. The signed-in state lives in
// an authctx.Provider placed in the REPL's context; login and logout refresh
// it.
//
// Commands:
//   - login / logout / whoami / jwt
//   - list [-f type] [-n limit] [search words]
//   - latest
//   - show <id> / agent <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the dispatch loop.
package cli
