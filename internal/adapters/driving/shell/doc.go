// Package shell implements the interactive meow session.
//
// A Session turns one input line into an action: free text is interpreted
// and searched, while "open N", "copy N", "index", "help", "clear" and
// "exit"/"quit" act on the session directly. The same Session backs the
// Bubbletea UI and the plain line REPL used when stdin is not a terminal.
package shell
