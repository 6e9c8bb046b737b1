package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/oilcam/internal/filter"
	"github.com/lanikai/oilcam/internal/logging"
	"github.com/lanikai/oilcam/internal/media"
	"github.com/lanikai/oilcam/internal/pipeline"
)

// Populated via -ldflags="-X ...".
var GitRevisionId = "dev"

const defaultDevice = "/dev/video0"

var log = logging.DefaultLogger.WithTag("oilcam")

var errUsage = errors.New("usage")

type options struct {
	device  string
	filter  string
	radius  int
	levels  int
	workers int
	help    bool
	version bool
}

func parseArgs(args []string) (*options, error) {
	opts := &options{device: defaultDevice}

	fs := flag.NewFlagSet("oilcam", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.filter, "filter", "f", "oil", "")
	fs.IntVarP(&opts.radius, "radius", "r", filter.DefaultRadius, "")
	fs.IntVarP(&opts.levels, "levels", "l", filter.DefaultLevels, "")
	fs.IntVarP(&opts.workers, "workers", "j", 0, "")
	fs.BoolVarP(&opts.help, "help", "h", false, "")
	fs.BoolVarP(&opts.version, "version", "v", false, "")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errUsage, err.Error())
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.device = fs.Arg(0)
	default:
		return nil, errors.Wrapf(errUsage, "unexpected argument '%s'", fs.Arg(1))
	}
	return opts, nil
}

// run executes one streaming session and returns the process exit status.
func run(ctx context.Context, prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		log.Debug("%v", err)
		usage(stderr, prog)
		return 1
	}
	if opts.help {
		help(stdout, prog)
		return 0
	}
	if opts.version {
		version(stdout, prog)
		return 0
	}

	alloc := media.NewPool()
	f, err := filter.ByName(opts.filter, filter.Options{
		Radius:  opts.radius,
		Levels:  opts.levels,
		Workers: opts.workers,
		Alloc:   alloc,
	})
	if err != nil {
		fail(stderr, prog, err)
		return 1
	}

	p := pipeline.New(pipeline.Config{
		Input:  stdin,
		Device: opts.device,
		Filter: f,
		Alloc:  alloc,
	})
	err = p.Run(ctx)
	if errors.Cause(err) == context.Canceled {
		return 0
	}
	if err != nil {
		log.Debug("pipeline failed in state %v after %d frames", p.State(), p.Frames())
		fail(stderr, prog, err)
		return 1
	}
	return 0
}

// fail prints a diagnostic for a fatal error.
func fail(w io.Writer, prog string, err error) {
	color.New(color.FgRed).Fprintf(w, "%s: %v\n", prog, err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// The first signal stops the stream at the next frame boundary. Restore
	// default handling so a second one terminates immediately, even while
	// blocked on input.
	go func() {
		<-ctx.Done()
		log.Info("interrupted; stopping after the current frame")
		stop()
	}()

	prog := filepath.Base(os.Args[0])
	os.Exit(run(ctx, prog, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
