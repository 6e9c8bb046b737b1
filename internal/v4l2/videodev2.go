// Video4Linux is a Linux-specific API. Only build if GOOS=linux.
//go:build linux
// +build linux

package v4l2

import (
	"encoding/binary"
	"unsafe"
)

// Subset of <linux/videodev2.h> needed to negotiate an output format.

const (
	V4L2_BUF_TYPE_VIDEO_OUTPUT = 2

	V4L2_FIELD_NONE = 1

	V4L2_CAP_VIDEO_OUTPUT = 0x00000002
	V4L2_CAP_DEVICE_CAPS  = 0x80000000
)

const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, nr, size uintptr) uint {
	return uint(dir<<30 | size<<16 | 'V'<<8 | nr)
}

var (
	VIDIOC_QUERYCAP = ioc(iocRead, 0, unsafe.Sizeof(v4l2_capability{}))
	VIDIOC_G_FMT    = ioc(iocRead|iocWrite, 4, unsafe.Sizeof(v4l2_format{}))
	VIDIOC_S_FMT    = ioc(iocRead|iocWrite, 5, unsafe.Sizeof(v4l2_format{}))
)

type v4l2_capability struct { // size 104
	driver       [16]byte
	card         [32]byte
	bus_info     [32]byte
	version      uint32
	capabilities uint32
	device_caps  uint32
	reserved     [3]uint32
}

type v4l2_format struct { // size 204 (32-bit) or 208 (64-bit)
	typ uint32
	_   [0]uintptr // the kernel union contains pointers
	fmt [200]byte
}

type v4l2_pix_format struct { // size 48
	width        uint32
	height       uint32
	pixelformat  uint32
	field        uint32
	bytesperline uint32
	sizeimage    uint32
	colorspace   uint32
	priv         uint32
	flags        uint32
	ycbcr_enc    uint32
	quantization uint32
	xfer_func    uint32
}

func (p *v4l2_pix_format) fields() []*uint32 {
	return []*uint32{
		&p.width, &p.height, &p.pixelformat, &p.field,
		&p.bytesperline, &p.sizeimage, &p.colorspace, &p.priv,
		&p.flags, &p.ycbcr_enc, &p.quantization, &p.xfer_func,
	}
}

// marshal writes the pixel format into the leading bytes of a format union.
func (p *v4l2_pix_format) marshal(raw []byte) {
	for i, f := range p.fields() {
		binary.NativeEndian.PutUint32(raw[4*i:], *f)
	}
}

func (p *v4l2_pix_format) unmarshal(raw []byte) {
	for i, f := range p.fields() {
		*f = binary.NativeEndian.Uint32(raw[4*i:])
	}
}

func (c *v4l2_capability) caps() uint32 {
	if c.capabilities&V4L2_CAP_DEVICE_CAPS != 0 {
		return c.device_caps
	}
	return c.capabilities
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
