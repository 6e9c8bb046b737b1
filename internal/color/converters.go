// Copyright 2019 Lanikai Labs. All rights reserved.

package color

import "fmt"

// YUV420 planar (I420) layout: a full resolution Y plane followed by the Cb
// and Cr planes, each subsampled by two in both directions.
//
// Products in the conversions below are explicitly converted to float64 so
// the compiler cannot fuse them into multiply-add instructions. Output must
// be bit-identical on every architecture.

// YUV420Size returns the size in bytes of a width x height YUV420 frame.
func YUV420Size(width, height int) int {
	return 3 * width * height / 2
}

// RGBSize returns the size in bytes of a width x height interleaved RGB frame.
func RGBSize(width, height int) int {
	return 3 * width * height
}

func checkSizes(yuv, rgb []byte, width, height int) {
	if len(yuv) < YUV420Size(width, height) || len(rgb) < RGBSize(width, height) {
		panic(fmt.Sprintf("color: short buffer for %dx%d frame: yuv=%d rgb=%d",
			width, height, len(yuv), len(rgb)))
	}
}

// YUV420ToRGB converts planar YUV420 src into interleaved RGB dst, using
// BT.601 limited range coefficients.
func YUV420ToRGB(dst, src []byte, width, height int) {
	checkSizes(src, dst, width, height)

	size := width * height
	cbBase := size
	crBase := size + size/4
	cstride := width / 2

	for i := 0; i < height; i++ {
		crow := (i / 2) * cstride
		for j := 0; j < width; j++ {
			y := float64(int(src[i*width+j]) - 16)
			cb := float64(int(src[cbBase+crow+j/2]) - 128)
			cr := float64(int(src[crBase+crow+j/2]) - 128)

			r := float64(1.164*y) + float64(1.596*cr)
			g := float64(1.164*y) - float64(0.392*cb) - float64(0.813*cr)
			b := float64(1.164*y) + float64(2.017*cb)

			k := 3 * (i*width + j)
			dst[k] = clampFloat(r)
			dst[k+1] = clampFloat(g)
			dst[k+2] = clampFloat(b)
		}
	}
}

// RGBToYUV420 converts interleaved RGB src into planar YUV420 dst. Luma is
// clamped to [16, 235] and chroma to [16, 240]. Chroma is not averaged: every
// pixel of a 2x2 block writes the same chroma sample, and the last one wins.
func RGBToYUV420(dst, src []byte, width, height int) {
	checkSizes(dst, src, width, height)

	size := width * height
	cbBase := size
	crBase := size + size/4
	cstride := width / 2

	for i := 0; i < height; i++ {
		crow := (i / 2) * cstride
		for j := 0; j < width; j++ {
			k := 3 * (i*width + j)
			r := float64(src[k])
			g := float64(src[k+1])
			b := float64(src[k+2])

			y := int(16 + float64(0.257*r) + float64(0.504*g) + float64(0.098*b))
			cb := int(128 - float64(0.148*r) - float64(0.291*g) + float64(0.439*b))
			cr := int(128 + float64(0.439*r) - float64(0.368*g) - float64(0.071*b))

			dst[i*width+j] = clampInt(y, 16, 235)
			dst[cbBase+crow+j/2] = clampInt(cb, 16, 240)
			dst[crBase+crow+j/2] = clampInt(cr, 16, 240)
		}
	}
}

// clampFloat clamps v to [0, 255] and truncates toward zero.
func clampFloat(v float64) byte {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}

func clampInt(v, lo, hi int) byte {
	if v > hi {
		return byte(hi)
	}
	if v < lo {
		return byte(lo)
	}
	return byte(v)
}
