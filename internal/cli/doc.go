// Package cli provides the interactive MomVerse terminal client.
//
// It wires the session manager, the feeding timer and the AI assistant into
// a line-oriented REPL. Typical flow: restore the current user from the
// store, then read commands until the user exits.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Feeding timer per side, bottle and pump entries, history and chart
//   - Mood journal
//   - Cry analysis, symptom check, wellness chat and meal plans
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command table.
package cli
