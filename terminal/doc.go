// Package terminal wraps a tcell screen as the cell output target of the view.
//
// The package owns only cells, colors and terminal lifecycle: the render
// package composes frames into cells and hands them over through Flush.
package terminal
