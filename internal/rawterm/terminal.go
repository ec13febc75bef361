// Package rawterm owns the /dev/tty device: opening it in cooperative
// raw mode (character-at-a-time, no echo, signal keys delivered as
// control codes) and decoding its byte stream into Key events.
package rawterm

import (
	"bufio"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const device = "/dev/tty"

// Terminal owns /dev/tty, opened read+write exactly once. Raw mode is
// acquired on the first call to Next and released by Close.
type Terminal struct {
	file   *os.File
	reader *bufio.Reader
	state  *term.State
	rawSet bool
}

// Open opens /dev/tty for read+write. It does not yet switch the
// terminal into raw mode; that happens lazily on the first Next call, so
// a caller that never reads a key (e.g. --benchmark) never touches
// terminal state at all.
func Open() (*Terminal, error) {
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open /dev/tty")
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		f.Close()
		return nil, errors.New("/dev/tty is not a terminal")
	}

	return &Terminal{file: f, reader: bufio.NewReader(f)}, nil
}

// Print writes text to the terminal and flushes it in one call; there
// is no internal buffering across calls, so every frame is one
// synchronous write.
func (t *Terminal) Print(text string) {
	if _, err := t.file.WriteString(text); err != nil {
		panic(errors.Wrap(err, "terminal write failed"))
	}
}

// Size returns the current terminal row/column count, or ok=false if
// the size cannot be detected.
func (t *Terminal) Size() (cols, rows int, ok bool) {
	cols, rows, err := term.GetSize(int(t.file.Fd()))
	return cols, rows, err == nil
}

// Close restores the terminal's original mode (if raw mode was ever
// entered) and closes the device.
func (t *Terminal) Close() error {
	if t.rawSet {
		term.Restore(int(t.file.Fd()), t.state)
	}
	return t.file.Close()
}

func (t *Terminal) ensureRaw() error {
	if t.rawSet {
		return nil
	}
	state, err := term.MakeRaw(int(t.file.Fd()))
	if err != nil {
		return errors.Wrap(err, "enter raw mode")
	}
	t.state = state
	t.rawSet = true
	return nil
}

// Next blocks until a full key event can be decoded from the tty and
// returns it. It is the only suspension point in the render loop.
func (t *Terminal) Next() (Key, error) {
	if err := t.ensureRaw(); err != nil {
		return Key{}, err
	}

	b, err := t.reader.ReadByte()
	if err != nil {
		return Key{}, errors.Wrap(err, "read key")
	}

	switch {
	case b == 0x1b:
		return t.decodeEscape()
	case b == '\r' || b == '\n':
		return Key{Type: KeyEnter}, nil
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}, nil
	case b == '\t':
		return Key{Type: KeyTab}, nil
	case b < 0x20:
		return Key{Type: KeyCtrl, Rune: rune('a' + b - 1)}, nil
	case b < 0x80:
		return Key{Type: KeyChar, Rune: rune(b)}, nil
	default:
		if err := t.reader.UnreadByte(); err != nil {
			return Key{Type: KeyChar, Rune: rune(b)}, nil
		}
		r, _, err := t.reader.ReadRune()
		if err != nil {
			return Key{Type: KeyChar, Rune: rune(b)}, nil
		}
		return Key{Type: KeyChar, Rune: r}, nil
	}
}

// decodeEscape disambiguates a bare Esc press from an Alt-chord or a
// CSI arrow sequence. It polls for a follow-up byte under a short read
// deadline; if nothing arrives within the window, Esc was pressed alone.
// Any other CSI sequence is consumed up to its final byte and dropped.
func (t *Terminal) decodeEscape() (Key, error) {
	next, ok := t.pollByte(escapeTimeout)
	if !ok {
		return Key{Type: KeyEsc}, nil
	}

	if next == '[' {
		seq, ok := t.pollByte(escapeTimeout)
		if !ok {
			return Key{Type: KeyEsc}, nil
		}
		switch seq {
		case 'A':
			return Key{Type: KeyUp}, nil
		case 'B':
			return Key{Type: KeyDown}, nil
		case 'C':
			return Key{Type: KeyRight}, nil
		case 'D':
			return Key{Type: KeyLeft}, nil
		default:
			for seq < 0x40 || seq > 0x7e {
				if seq, ok = t.pollByte(escapeTimeout); !ok {
					break
				}
			}
			return t.Next()
		}
	}

	return Key{Type: KeyAlt, Rune: rune(next)}, nil
}

const escapeTimeout = 25 * time.Millisecond

// pollByte waits up to d for a byte to become available on the tty,
// using a read deadline so a lone Esc press doesn't block the render
// loop waiting for a CSI sequence that will never arrive. The deadline
// is cleared before returning so subsequent ordinary reads stay
// blocking.
func (t *Terminal) pollByte(d time.Duration) (byte, bool) {
	if t.reader.Buffered() == 0 {
		t.file.SetReadDeadline(time.Now().Add(d))
		defer t.file.SetReadDeadline(time.Time{})
	}

	b, err := t.reader.ReadByte()
	return b, err == nil
}
