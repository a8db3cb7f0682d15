// Package terminal provides direct ANSI terminal control for the
// interactive viewer: raw-mode stdin with escape-sequence key parsing,
// SIGWINCH resize detection, and raw frame output with clean
// restoration on exit or panic.
//
// The package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with
// xterm-compatible terminals.
package terminal
