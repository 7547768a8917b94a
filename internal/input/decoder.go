package input

import "io"

// Decoder turns a raw byte stream into key events. The source is expected
// to behave like a raw-mode terminal session: Read returns (0, nil) when
// no input arrives before the timeout, so the decoder never blocks
// indefinitely on either the first byte of a key or the continuation of an
// escape sequence.
type Decoder struct {
	src io.Reader
}

// NewDecoder creates a decoder reading from src.
func NewDecoder(src io.Reader) *Decoder {
	return &Decoder{src: src}
}

// Next decodes one key event. A timeout with no input yields an event with
// KeyNone; an escape byte followed by nothing within the timeout yields a
// bare Escape keypress.
func (d *Decoder) Next() (Event, error) {
	b, ok, err := d.readByte()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Key: KeyNone}, nil
	}

	switch b {
	case 0x1b:
		return d.decodeEscape()
	case 0x7f:
		return Event{Key: KeyBackspace}, nil
	case '\r':
		return Event{Key: KeyEnter}, nil
	}
	return Event{Key: KeyRune, Rune: rune(b)}, nil
}

// decodeEscape disambiguates a bare Escape keypress from a multi-byte
// sequence by reading up to three continuation bytes under the source's
// timeout. Unrecognized or truncated sequences degrade to Escape.
func (d *Decoder) decodeEscape() (Event, error) {
	b0, ok, err := d.readByte()
	if err != nil || !ok {
		return Event{Key: KeyEscape}, err
	}
	b1, ok, err := d.readByte()
	if err != nil || !ok {
		return Event{Key: KeyEscape}, err
	}

	switch b0 {
	case '[':
		if b1 >= '0' && b1 <= '9' {
			b2, ok, err := d.readByte()
			if err != nil || !ok {
				return Event{Key: KeyEscape}, err
			}
			if b2 != '~' {
				return Event{Key: KeyEscape}, nil
			}
			switch b1 {
			case '1', '7':
				return Event{Key: KeyHome}, nil
			case '3':
				return Event{Key: KeyDelete}, nil
			case '4', '8':
				return Event{Key: KeyEnd}, nil
			case '5':
				return Event{Key: KeyPageUp}, nil
			case '6':
				return Event{Key: KeyPageDown}, nil
			}
			return Event{Key: KeyEscape}, nil
		}
		switch b1 {
		case 'A':
			return Event{Key: KeyUp}, nil
		case 'B':
			return Event{Key: KeyDown}, nil
		case 'C':
			return Event{Key: KeyRight}, nil
		case 'D':
			return Event{Key: KeyLeft}, nil
		case 'H':
			return Event{Key: KeyHome}, nil
		case 'F':
			return Event{Key: KeyEnd}, nil
		}
	case 'O':
		switch b1 {
		case 'A':
			return Event{Key: KeyUp}, nil
		case 'B':
			return Event{Key: KeyDown}, nil
		case 'C':
			return Event{Key: KeyRight}, nil
		case 'D':
			return Event{Key: KeyLeft}, nil
		case 'H':
			return Event{Key: KeyHome}, nil
		case 'F':
			return Event{Key: KeyEnd}, nil
		}
	}
	return Event{Key: KeyEscape}, nil
}

// readByte performs one timed read. ok is false when the timeout expired
// with no input.
func (d *Decoder) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := d.src.Read(buf[:])
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}
