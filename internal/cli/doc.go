// Package cli provides the interactive PaperRoost terminal front end.
//
// It wires configuration, the local vault database, the PIN gate and the
// contract store, then runs a REPL. On start the user either creates a PIN
// (first launch) or unlocks the vault; contract commands are only accepted
// while the vault is unlocked, and 'lock' closes it again.
//
// Signatures are entered as strokes: each input line is one stroke made of
// space-separated "x,y" points on a 1000x600 canvas, and an empty line
// finishes the signature.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
