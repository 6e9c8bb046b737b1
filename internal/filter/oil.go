package filter

import (
	"runtime"
	"sync"

	"github.com/lanikai/oilcam/internal/media"
)

const (
	DefaultRadius = 3
	DefaultLevels = 20
)

// OilPaint renders an oil painting effect. Each output pixel looks at the
// (2*Radius+1)^2 neighbourhood around it, buckets every neighbour by
// intensity into Levels bins, and takes the mean color of the most
// populated bin. Ties go to the darker bin.
//
// Rows are split evenly across Workers goroutines; Filter blocks until all
// of them are done.
type OilPaint struct {
	Radius  int // 0 looks at the pixel alone; negative means DefaultRadius
	Levels  int // Intensity bins, at most 256; 0 means DefaultLevels
	Workers int // 0 means runtime.NumCPU()

	Alloc media.Allocator
}

func (f *OilPaint) params() (radius, levels, workers int) {
	radius, levels, workers = f.Radius, f.Levels, f.Workers
	if radius < 0 {
		radius = DefaultRadius
	}
	if levels <= 0 {
		levels = DefaultLevels
	}
	if levels > 256 {
		levels = 256
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return
}

func (f *OilPaint) Filter(rgb []byte, width, height int) []byte {
	radius, levels, workers := f.params()
	out := allocator(f.Alloc).Alloc(len(rgb))

	if workers > height {
		workers = height
	}
	if workers <= 1 {
		paintRows(out, rgb, width, height, 0, height, radius, levels)
		return out
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := height * w / workers
		y1 := height * (w + 1) / workers
		wg.Add(1)
		go func() {
			defer wg.Done()
			paintRows(out, rgb, width, height, y0, y1, radius, levels)
		}()
	}
	wg.Wait()
	return out
}

// paintRows writes output rows [y0, y1) of dst. Workers write disjoint rows
// and only read src.
func paintRows(dst, src []byte, width, height, y0, y1, radius, levels int) {
	count := make([]int, levels)
	sumR := make([]int, levels)
	sumG := make([]int, levels)
	sumB := make([]int, levels)

	for y := y0; y < y1; y++ {
		top, bottom := max(y-radius, 0), min(y+radius, height-1)
		for x := 0; x < width; x++ {
			left, right := max(x-radius, 0), min(x+radius, width-1)

			for i := range count {
				count[i], sumR[i], sumG[i], sumB[i] = 0, 0, 0, 0
			}

			for yy := top; yy <= bottom; yy++ {
				row := yy * width
				for xx := left; xx <= right; xx++ {
					k := 3 * (row + xx)
					r, g, b := int(src[k]), int(src[k+1]), int(src[k+2])
					bin := (r + g + b) / 3 * levels / 256
					count[bin]++
					sumR[bin] += r
					sumG[bin] += g
					sumB[bin] += b
				}
			}

			best := 0
			for i := 1; i < levels; i++ {
				if count[i] > count[best] {
					best = i
				}
			}

			k := 3 * (y*width + x)
			n := count[best]
			dst[k] = byte(sumR[best] / n)
			dst[k+1] = byte(sumG[best] / n)
			dst[k+2] = byte(sumB[best] / n)
		}
	}
}
