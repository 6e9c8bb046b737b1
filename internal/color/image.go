package color

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// LoadPNG decodes the PNG image at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// PackRGB scales img to width x height and returns it as interleaved RGB.
// Alpha is discarded.
func PackRGB(img image.Image, width, height int) []byte {
	dr := image.Rect(0, 0, width, height)
	rgba := image.NewRGBA(dr)
	if img.Bounds().Size() == dr.Size() {
		draw.Copy(rgba, image.Point{}, img, img.Bounds(), draw.Src, nil)
	} else {
		draw.BiLinear.Scale(rgba, dr, img, img.Bounds(), draw.Src, nil)
	}

	out := make([]byte, RGBSize(width, height))
	for i := 0; i < width*height; i++ {
		copy(out[3*i:3*i+3], rgba.Pix[4*i:4*i+3])
	}
	return out
}
