package rawterm

// Key is a decoded terminal input event.
type Key struct {
	Type Type
	Rune rune
}

// Type enumerates the key events the render loop understands. Any byte
// sequence that doesn't decode to one of these is reported as KeyChar
// with its literal rune (printable) or simply dropped (unrecognized
// control sequence).
type Type int

const (
	KeyChar Type = iota
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrl
	KeyAlt
	KeyEnter
	KeyEsc
	KeyTab
)
