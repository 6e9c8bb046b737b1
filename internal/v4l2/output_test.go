//go:build linux
// +build linux

package v4l2

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestStructSizes(t *testing.T) {
	assert.EqualValues(t, 104, unsafe.Sizeof(v4l2_capability{}))
	assert.EqualValues(t, 48, unsafe.Sizeof(v4l2_pix_format{}))

	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.EqualValues(t, 208, unsafe.Sizeof(v4l2_format{}))
		assert.EqualValues(t, uint(0xc0d05604), VIDIOC_G_FMT)
		assert.EqualValues(t, uint(0xc0d05605), VIDIOC_S_FMT)
	} else {
		assert.EqualValues(t, 204, unsafe.Sizeof(v4l2_format{}))
		assert.EqualValues(t, uint(0xc0cc5604), VIDIOC_G_FMT)
		assert.EqualValues(t, uint(0xc0cc5605), VIDIOC_S_FMT)
	}
	assert.EqualValues(t, uint(0x80685600), VIDIOC_QUERYCAP)
}

func TestPixFormatMarshal(t *testing.T) {
	var f v4l2_format
	f.fmt[48] = 0xaa

	in := v4l2_pix_format{width: 160, height: 120, pixelformat: V4L2_PIX_FMT_YUV420, sizeimage: 28800, xfer_func: 7}
	in.marshal(f.fmt[:])

	var out v4l2_pix_format
	out.unmarshal(f.fmt[:])
	assert.Equal(t, in, out)
	assert.EqualValues(t, 0xaa, f.fmt[48], "bytes past the pixel format are untouched")
}

func TestCString(t *testing.T) {
	assert.Equal(t, "v4l2 loopback", cstring([]byte("v4l2 loopback\x00\x00junk")))
	assert.Equal(t, "abc", cstring([]byte("abc")))
}

func TestOpenMissingDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video42")
	_, err := Open(path, Config{Format: V4L2_PIX_FMT_YUV420, Width: 160, Height: 120})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, unix.ENOENT, errors.Cause(err))
}

// A regular file accepts open(O_RDWR) but rejects V4L2 ioctls, so
// negotiation fails on the first format query.
func TestOpenNotADevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Open(path, Config{Format: V4L2_PIX_FMT_YUV420, Width: 160, Height: 120})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "G_FMT")
	assert.Equal(t, unix.ENOTTY, errors.Cause(err))
}

func TestOpenLoopbackDevice(t *testing.T) {
	const path = "/dev/video0"
	if _, err := os.Stat(path); err != nil {
		t.Skip("No video device:", err)
	}

	out, err := Open(path, Config{Format: V4L2_PIX_FMT_YUV420, Width: 160, Height: 120})
	if err != nil {
		t.Skip("Can't negotiate output format:", err)
	}
	defer out.Close()

	assert.EqualValues(t, 160, out.Format().Width)
	n, err := out.Write(make([]byte, out.Format().FrameSize()))
	require.NoError(t, err)
	assert.EqualValues(t, out.Format().FrameSize(), n)
}
