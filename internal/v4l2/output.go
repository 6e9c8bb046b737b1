//go:build linux
// +build linux

package v4l2

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/lanikai/oilcam/internal/logging"
)

var log = logging.DefaultLogger.WithTag("v4l2")

// Output is a V4L2 video output device, e.g. a v4l2loopback node, with a
// negotiated frame format. Frames are written with Write.
type Output struct {
	// Device path, usually "/dev/video0".
	path string

	// File descriptor of v4l2 device.
	fd int

	// Format accepted by the driver.
	format Config
}

// Open opens the output device at path and negotiates the given geometry
// and pixel format. The device is closed again if negotiation fails.
func Open(path string, cfg Config) (*Output, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	out := &Output{path: path, fd: fd}
	out.describe()

	if err := out.setFormat(cfg); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return out, nil
}

func (out *Output) ioctl(request uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(out.fd),
		uintptr(request),
		uintptr(arg),
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// Log the driver and card name. Purely informational.
func (out *Output) describe() {
	var caps v4l2_capability
	if err := out.ioctl(VIDIOC_QUERYCAP, unsafe.Pointer(&caps)); err != nil {
		log.Debug("%s: QUERYCAP: %v", out.path, err)
		return
	}
	log.Info("%s: driver %s, card %q", out.path, cstring(caps.driver[:]), cstring(caps.card[:]))
	if caps.caps()&V4L2_CAP_VIDEO_OUTPUT == 0 {
		log.Warn("%s: device does not advertise video output capability", out.path)
	}
}

// Read the current output format, replace geometry and pixel format, and
// apply it.
func (out *Output) setFormat(cfg Config) error {
	f := v4l2_format{typ: V4L2_BUF_TYPE_VIDEO_OUTPUT}
	if err := out.ioctl(VIDIOC_G_FMT, unsafe.Pointer(&f)); err != nil {
		return errors.Wrap(err, "G_FMT")
	}

	var pix v4l2_pix_format
	pix.unmarshal(f.fmt[:])
	pix.width = uint32(cfg.Width)
	pix.height = uint32(cfg.Height)
	pix.pixelformat = cfg.Format
	pix.field = V4L2_FIELD_NONE
	pix.bytesperline = uint32(cfg.Width)
	pix.sizeimage = uint32(cfg.FrameSize())
	pix.marshal(f.fmt[:])

	if err := out.ioctl(VIDIOC_S_FMT, unsafe.Pointer(&f)); err != nil {
		return errors.Wrap(err, "S_FMT")
	}

	// S_FMT writes back what the driver actually selected.
	pix.unmarshal(f.fmt[:])
	out.format = Config{
		Format: pix.pixelformat,
		Width:  uint(pix.width),
		Height: uint(pix.height),
	}
	if out.format.Width != cfg.Width || out.format.Height != cfg.Height || out.format.Format != cfg.Format {
		return errors.Errorf("S_FMT: driver selected %v instead of %v", out.format, cfg)
	}

	log.Info("%s: output format %v, %d bytes per frame", out.path, out.format, pix.sizeimage)
	return nil
}

// Format returns the format accepted by the driver.
func (out *Output) Format() Config {
	return out.format
}

// Write one frame to the device. A short write is an error.
func (out *Output) Write(p []byte) (int, error) {
	n, err := unix.Write(out.fd, p)
	if err != nil {
		return n, errors.Wrap(err, "write")
	}
	if n != len(p) {
		return n, errors.Wrapf(io.ErrShortWrite, "write: %d of %d bytes", n, len(p))
	}
	return n, nil
}

// Close the video device.
func (out *Output) Close() error {
	return unix.Close(out.fd)
}
