package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const usageString = "Usage: %s [OPTION]... [/dev/videoN]\n"

const helpString = `Apply an oil paint filter to a YUV4MPEG2 stream read from standard input and
write it to a Video4Linux2 output device (e.g. v4l2loopback).

Filter:
  -f, --filter=NAME      Filter to apply: oil, identity (default: oil)
  -r, --radius=NUM       Oil paint neighbourhood radius, in pixels (default: 3)
  -l, --levels=NUM       Oil paint intensity levels (default: 20)
  -j, --workers=NUM      Filter goroutines, 0 for one per CPU (default: 0)

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Output devices not under /dev/video are written as raw YUV420 frames.
Set LOGLEVEL=debug (or e.g. LOGLEVEL=v4l2=debug) for more logging.

Example, with mplayer as the producer:
  $ mkfifo /tmp/pipe
  $ oilcam /dev/video2 < /tmp/pipe &
  $ mplayer movie.mp4 -vo yuv4mpeg:file=/tmp/pipe`

// usage prints a one line synopsis (for invocation errors)
func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, usageString, prog)
}

// help prints full usage information
func help(w io.Writer, prog string) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s", prog)
	fmt.Fprintln(w, " - real-time oil paint webcam filter")
	fmt.Fprintln(w)
	usage(w, prog)
	fmt.Fprintln(w)
	fmt.Fprintln(w, helpString)
}

// version prints version information
func version(w io.Writer, prog string) {
	fmt.Fprintln(w, prog, GitRevisionId)
	fmt.Fprintln(w, "Copyright 2019 Lanikai Labs LLC. All rights reserved.")
}
