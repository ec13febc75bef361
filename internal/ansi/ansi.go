// Package ansi holds the escape-sequence primitives the renderer
// composes into one flushed write per frame. Every helper here is a
// pure string builder; nothing in this package touches an io.Writer.
package ansi

import "fmt"

// Up, Down, Left and Right move the cursor n cells in the given
// direction.
func Up(n int) string    { return csi(n, "A") }
func Down(n int) string  { return csi(n, "B") }
func Left(n int) string  { return csi(n, "D") }
func Right(n int) string { return csi(n, "C") }

// Col moves the cursor to the given 1-based column.
func Col(n int) string { return csi(n, "G") }

// ClearLine erases the entire current line.
func ClearLine() string { return "\x1B[2K" }

// ClearScreenDown erases from the cursor to the end of the screen.
func ClearScreenDown() string { return "\x1B[J" }

// SavePosition and RestorePosition save/restore the cursor position
// using the DEC escape sequences (not the ANSI.SYS SCP/RCP pair, to
// match terminals that only implement the former).
func SavePosition() string    { return "\x1B7" }
func RestorePosition() string { return "\x1B8" }

// Inverse wraps s in an inverse-video escape pair.
func Inverse(s string) string {
	return "\x1B[7m" + s + "\x1B[27m"
}

// Highlight wraps a single rune in the match-highlight color escape
// pair.
func Highlight(r rune) string {
	return "\x1B[35m" + string(r) + "\x1B[39m"
}

func csi(n int, final string) string {
	return fmt.Sprintf("\x1B[%d%s", n, final)
}
