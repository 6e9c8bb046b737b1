package y4m

import (
	"bytes"
	"fmt"
)

const (
	StreamMagic = "YUV4MPEG2"
	FrameMagic  = "FRAME"
)

// Header is one line of a YUV4MPEG2 stream: either the stream header or a
// frame marker. Only the W and H tags carry meaning; every other tag is kept
// verbatim in Tags and otherwise ignored.
type Header struct {
	Magic  string
	Width  int
	Height int
	Tags   map[byte]string
}

// FrameSize returns the size in bytes of one 4:2:0 planar frame.
func (h *Header) FrameSize() int {
	return 3 * h.Width * h.Height / 2
}

func (h *Header) String() string {
	return fmt.Sprintf("%s %dx%d", h.Magic, h.Width, h.Height)
}

// parseHeader tokenizes a single header line, including its trailing
// newline, and checks that the first token is the expected magic.
func parseHeader(line []byte, magic string) (*Header, error) {
	n := len(line)
	if n == 0 || line[n-1] != '\n' {
		return nil, malformed(magic, "unterminated line")
	}
	line = line[:n-1]
	if bytes.IndexByte(line, 0) >= 0 {
		return nil, malformed(magic, "embedded NUL")
	}

	h := &Header{Magic: magic}
	for i, tok := range bytes.Split(line, []byte{' '}) {
		if i == 0 {
			if string(tok) != magic {
				return nil, malformed(magic, fmt.Sprintf("unexpected magic %q", tok))
			}
			continue
		}
		if len(tok) == 0 {
			continue
		}
		if err := h.setTag(tok[0], tok[1:]); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Header) setTag(tag byte, value []byte) error {
	switch tag {
	case 'W', 'H':
		v, ok := parseUint(value)
		if !ok {
			return malformed(h.Magic, fmt.Sprintf("%c%s: dimension out of range", tag, value))
		}
		if tag == 'W' {
			h.Width = v
		} else {
			h.Height = v
		}
	default:
		if h.Tags == nil {
			h.Tags = make(map[byte]string)
		}
		h.Tags[tag] = string(value)
	}
	return nil
}

// parseUint converts the leading decimal digits of p, ignoring anything
// after them. No digits yields 0. Values above maxDimension are rejected.
func parseUint(p []byte) (int, bool) {
	v := 0
	for _, c := range p {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
		if v > maxDimension {
			return 0, false
		}
	}
	return v, true
}

// Largest accepted width or height. Keeps size arithmetic from overflowing.
const maxDimension = 1 << 16
