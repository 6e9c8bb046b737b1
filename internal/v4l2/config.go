package v4l2

import "fmt"

type Config struct {
	Format uint32 // Pixel format fourcc (e.g. V4L2_PIX_FMT_YUV420)
	Width  uint   // Video width in pixels
	Height uint   // Video height in pixels
}

// FrameSize returns the size in bytes of one YUV420 frame.
func (c Config) FrameSize() uint {
	return 3 * c.Width * c.Height / 2
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d %s", c.Width, c.Height, FourCC(c.Format))
}

// FourCC renders a pixel format code as its four character name.
func FourCC(f uint32) string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

// Planar YUV 4:2:0, Cb plane before Cr plane (I420).
const V4L2_PIX_FMT_YUV420 uint32 = 'Y' | 'U'<<8 | '1'<<16 | '2'<<24
