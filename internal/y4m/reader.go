package y4m

import (
	"bufio"
	"io"
	"strings"

	errors "golang.org/x/xerrors"

	"github.com/lanikai/oilcam/internal/logging"
)

var log = logging.DefaultLogger.WithTag("y4m")

// Reader consumes a YUV4MPEG2 stream: text header lines interleaved with raw
// frame payloads.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{br}
	}
	return &Reader{bufio.NewReader(r)}
}

// ReadHeader reads one header line and checks it starts with magic. It
// returns ok == false, with a nil error, if the stream ended before any byte
// of the line was read.
func (r *Reader) ReadHeader(magic string) (h *Header, ok bool, err error) {
	line, err := r.r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return nil, false, nil
		}
		return nil, false, malformed(magic, "unterminated line")
	} else if err != nil {
		return nil, false, errors.Errorf("read %s header: %w", magic, err)
	}

	h, err = parseHeader(line, magic)
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}

// ReadStreamHeader reads the YUV4MPEG2 stream header and checks that it
// carries a frame geometry.
func (r *Reader) ReadStreamHeader() (*Header, error) {
	h, ok, err := r.ReadHeader(StreamMagic)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("missing %s header: %w", StreamMagic, ErrMissingHeader)
	}
	if h.FrameSize() == 0 {
		return nil, ErrMissingGeometry
	}

	if c, found := h.Tags['C']; found && !strings.HasPrefix(c, "420") {
		log.Warn("stream colorspace C%s is not 4:2:0; treating payload as 4:2:0 anyway", c)
	}
	log.Debug("stream header: %v tags=%v", h, h.Tags)
	return h, nil
}

// ReadFrame fills buf with exactly len(buf) bytes of frame payload. Input
// that ends early is ErrMalformedFrame; any other read error is returned
// wrapped.
func (r *Reader) ReadFrame(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		return errors.Errorf("read %d of %d frame bytes: %w", n, len(buf), ErrMalformedFrame)
	default:
		return errors.Errorf("read frame: %w", err)
	}
}
