package y4m

import (
	"bufio"
	"fmt"
	"io"

	errors "golang.org/x/xerrors"
)

// Writer produces a YUV4MPEG2 stream in the reduced form Reader consumes:
// a stream header carrying W and H, then FRAME markers each followed by one
// raw 4:2:0 frame.
type Writer struct {
	w         *bufio.Writer
	frameSize int
}

// NewWriter writes the stream header. Extra tags, e.g. "F30:1", are appended
// verbatim.
func NewWriter(w io.Writer, width, height int, tags ...string) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrMissingGeometry
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s W%d H%d", StreamMagic, width, height)
	for _, t := range tags {
		bw.WriteByte(' ')
		bw.WriteString(t)
	}
	bw.WriteByte('\n')

	return &Writer{w: bw, frameSize: 3 * width * height / 2}, nil
}

// WriteFrame writes a FRAME marker and the frame payload, and flushes.
func (w *Writer) WriteFrame(frame []byte) error {
	if len(frame) != w.frameSize {
		return errors.Errorf("frame is %d bytes, want %d: %w", len(frame), w.frameSize, ErrMalformedFrame)
	}
	w.w.WriteString(FrameMagic + "\n")
	w.w.Write(frame)
	return w.w.Flush()
}
