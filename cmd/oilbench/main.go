// Measures oil paint filter throughput on a static image.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	imgcolor "github.com/lanikai/oilcam/internal/color"
	"github.com/lanikai/oilcam/internal/filter"
	"github.com/lanikai/oilcam/internal/media"
)

var (
	flagInput      string
	flagGeometry   string
	flagIterations int
	flagFilter     string
	flagRadius     int
	flagLevels     int
	flagWorkers    int
)

func init() {
	flag.StringVarP(&flagInput, "input", "i", "resources/forest_fHD.png", "Reference PNG image")
	flag.StringVarP(&flagGeometry, "geometry", "g", "1920x1080", "Frame size the image is scaled to")
	flag.IntVarP(&flagIterations, "iterations", "n", 40, "Number of filter runs")
	flag.StringVarP(&flagFilter, "filter", "f", "oil", "Filter to benchmark: oil, identity")
	flag.IntVarP(&flagRadius, "radius", "r", filter.DefaultRadius, "Oil paint radius")
	flag.IntVarP(&flagLevels, "levels", "l", filter.DefaultLevels, "Oil paint intensity levels")
	flag.IntVarP(&flagWorkers, "workers", "j", 0, "Filter goroutines, 0 for one per CPU")
}

type result struct {
	iterations int
	elapsed    time.Duration
	min, max   time.Duration
}

func (r result) mean() time.Duration {
	return r.elapsed / time.Duration(r.iterations)
}

// frameRate is the number of filter runs per second of wall time.
func (r result) frameRate() float64 {
	return float64(r.iterations) / r.elapsed.Seconds()
}

// bench runs f over rgb n times, releasing every output back to alloc.
func bench(f filter.Filter, alloc media.Allocator, rgb []byte, width, height, n int) result {
	r := result{iterations: n}
	for i := 0; i < n; i++ {
		start := time.Now()
		out := f.Filter(rgb, width, height)
		d := time.Since(start)
		alloc.Release(out)

		r.elapsed += d
		if i == 0 || d < r.min {
			r.min = d
		}
		if d > r.max {
			r.max = d
		}
	}
	return r
}

func report(w io.Writer, name string, r result) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-24s", name)
	fmt.Fprintf(w, " %4d iterations  mean %8.2f ms  min %8.2f ms  max %8.2f ms  ",
		r.iterations, ms(r.mean()), ms(r.min), ms(r.max))
	color.New(color.FgGreen).Fprintf(w, "frame_rate=%.2f/s\n", r.frameRate())
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func run() error {
	var width, height int
	if n, err := fmt.Sscanf(flagGeometry, "%dx%d", &width, &height); n != 2 || err != nil {
		return errors.Errorf("invalid geometry '%s'", flagGeometry)
	}
	if width <= 0 || height <= 0 || flagIterations <= 0 {
		return errors.New("geometry and iterations must be positive")
	}

	img, err := imgcolor.LoadPNG(flagInput)
	if err != nil {
		return err
	}
	rgb := imgcolor.PackRGB(img, width, height)

	alloc := media.NewPool()
	f, err := filter.ByName(flagFilter, filter.Options{
		Radius:  flagRadius,
		Levels:  flagLevels,
		Workers: flagWorkers,
		Alloc:   alloc,
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("BM_%s/%dx%d", flagFilter, width, height)
	report(os.Stdout, name, bench(f, alloc, rgb, width, height, flagIterations))
	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "oilbench: %v\n", err)
		os.Exit(1)
	}
}
