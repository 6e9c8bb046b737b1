package y4m

import (
	"bytes"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringReader(s string) *Reader {
	return NewReader(strings.NewReader(s))
}

func TestReadFrameHeader(t *testing.T) {
	h, ok, err := newStringReader("FRAME\n").ReadHeader(FrameMagic)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, FrameMagic, h.Magic)
	assert.Zero(t, h.Width)
	assert.Zero(t, h.Height)
	assert.Empty(t, h.Tags)
}

func TestReadHeaderWrongMagic(t *testing.T) {
	_, ok, err := newStringReader("MAGIC\n").ReadHeader(FrameMagic)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "malformed FRAME header")
}

func TestReadHeaderEmptyInput(t *testing.T) {
	h, ok, err := newStringReader("").ReadHeader(FrameMagic)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, h)
}

func TestReadHeaderUnterminated(t *testing.T) {
	_, _, err := newStringReader("FRAME").ReadHeader(FrameMagic)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestReadHeaderEmbeddedNUL(t *testing.T) {
	_, _, err := newStringReader("FRAME\x00\n").ReadHeader(FrameMagic)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestReadStreamHeaderTags(t *testing.T) {
	for _, line := range []string{
		"YUV4MPEG2 W160 H120\n",
		"YUV4MPEG2 W160 H120 X9\n",
		"YUV4MPEG2 W160 H120 F30:1 Ip A1:1 C420jpeg\n",
		"YUV4MPEG2  W160  H120\n",
	} {
		h, err := newStringReader(line).ReadStreamHeader()
		require.NoError(t, err, line)
		assert.Equal(t, 160, h.Width, line)
		assert.Equal(t, 120, h.Height, line)
		assert.Equal(t, 3*160*120/2, h.FrameSize(), line)
	}
}

func TestUnknownTagsAreKept(t *testing.T) {
	h, err := newStringReader("YUV4MPEG2 W4 H2 F25:1 C420mpeg2\n").ReadStreamHeader()
	require.NoError(t, err)
	assert.Equal(t, "25:1", h.Tags['F'])
	assert.Equal(t, "420mpeg2", h.Tags['C'])
}

func TestReadStreamHeaderMissing(t *testing.T) {
	_, err := newStringReader("").ReadStreamHeader()
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestReadStreamHeaderMissingGeometry(t *testing.T) {
	for _, line := range []string{
		"YUV4MPEG2 W160\n",
		"YUV4MPEG2 H120\n",
		"YUV4MPEG2\n",
		"YUV4MPEG2 Wabc H120\n",
	} {
		_, err := newStringReader(line).ReadStreamHeader()
		assert.ErrorIs(t, err, ErrMissingGeometry, line)
	}
}

func TestParseUint(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
		ok   bool
	}{
		{"640", 640, true},
		{"12x", 12, true},
		{"", 0, true},
		{"65536", maxDimension, true},
		{"65537", 0, false},
		{"99999999999999999999", 0, false},
	} {
		v, ok := parseUint([]byte(tc.in))
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, v, tc.in)
	}
}

func TestReadStreamHeaderDimensionOutOfRange(t *testing.T) {
	_, err := newStringReader("YUV4MPEG2 W70000 H2\n").ReadStreamHeader()
	assert.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "W70000")

	_, _, err = newStringReader("FRAME H99999999999\n").ReadHeader(FrameMagic)
	assert.ErrorIs(t, err, ErrMalformedHeader)
	assert.Contains(t, err.Error(), "malformed FRAME header")
}

func TestReadFrames(t *testing.T) {
	var in bytes.Buffer
	in.WriteString("YUV4MPEG2 W4 H2\n")
	for i := 0; i < 2; i++ {
		in.WriteString("FRAME\n")
		in.Write(bytes.Repeat([]byte{byte(i + 1)}, 12))
	}

	r := NewReader(&in)
	sh, err := r.ReadStreamHeader()
	require.NoError(t, err)

	buf := make([]byte, sh.FrameSize())
	for i := 0; i < 2; i++ {
		_, ok, err := r.ReadHeader(FrameMagic)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, r.ReadFrame(buf))
		assert.Equal(t, bytes.Repeat([]byte{byte(i + 1)}, 12), buf)
	}

	_, ok, err := r.ReadHeader(FrameMagic)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestReadFrameShort(t *testing.T) {
	r := newStringReader("FRAME\nabc")
	_, ok, err := r.ReadHeader(FrameMagic)
	require.NoError(t, err)
	require.True(t, ok)

	err = r.ReadFrame(make([]byte, 12))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestReadFrameIOError(t *testing.T) {
	in := io.MultiReader(strings.NewReader("FRAME\nab"), &failingReader{syscall.EIO})
	r := NewReader(in)
	_, ok, err := r.ReadHeader(FrameMagic)
	require.NoError(t, err)
	require.True(t, ok)

	err = r.ReadFrame(make([]byte, 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EIO)
	assert.NotErrorIs(t, err, ErrMalformedFrame)
	assert.Contains(t, err.Error(), "input/output error")
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}
