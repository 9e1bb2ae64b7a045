// Package session runs the interactive menu loop.
//
// The loop is a small state machine. From the menu a one-letter command
// selects view, add or backup; each action runs to completion and returns
// to the menu. "q" ends the loop, as does a confirmed interrupt or the end
// of input.
package session
