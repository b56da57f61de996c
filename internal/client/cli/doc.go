// Package cli provides the interactive firemap command-line client.
//
// The REPL mirrors the screens of the field app: account commands, the
// building list and search, add and edit forms, the floor-layout editor, the
// gallery and the FAQ. Every command prints its own failure and returns to
// the prompt; nothing a command does ends the program.
//
// Commands that change buildings or layouts are only offered to editors.
// The server makes the real decision.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
