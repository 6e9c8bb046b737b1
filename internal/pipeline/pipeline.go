// Package pipeline drives a YUV4MPEG2 stream through a pixel filter and into
// a video sink, one frame at a time.
package pipeline

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/lanikai/oilcam/internal/color"
	"github.com/lanikai/oilcam/internal/filter"
	"github.com/lanikai/oilcam/internal/logging"
	"github.com/lanikai/oilcam/internal/media"
	"github.com/lanikai/oilcam/internal/v4l2"
	"github.com/lanikai/oilcam/internal/y4m"
)

var log = logging.DefaultLogger.WithTag("pipeline")

type Config struct {
	// YUV4MPEG2 stream, usually standard input.
	Input io.Reader

	// Output device path, e.g. "/dev/video0".
	Device string

	// Opens the output device. Defaults to OpenSink.
	Open OpenFunc

	Filter filter.Filter

	// RGB buffers are allocated and released here. Must be the allocator the
	// filter draws its output buffers from. Defaults to media.Heap.
	Alloc media.Allocator
}

// Pipeline holds all state of one streaming session: negotiated geometry,
// the output sink and the frame buffers. Buffers are owned exclusively by
// the pipeline and never escape it.
type Pipeline struct {
	cfg   Config
	in    *y4m.Reader
	alloc media.Allocator

	state  State
	frames uint64

	width  int
	height int

	sink   media.VideoSink
	planar []byte // YUV420, reused for every frame
	rgb    []byte // current RGB frame, replaced by each filter call
}

func New(cfg Config) *Pipeline {
	if cfg.Open == nil {
		cfg.Open = OpenSink
	}
	if cfg.Alloc == nil {
		cfg.Alloc = media.Heap
	}
	return &Pipeline{
		cfg:   cfg,
		in:    y4m.NewReader(cfg.Input),
		alloc: cfg.Alloc,
	}
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	return p.state
}

// Frames returns the number of frames written to the sink so far.
func (p *Pipeline) Frames() uint64 {
	return p.frames
}

// Run processes the stream until it ends cleanly (nil error) or anything
// fails. There are no retries: a damaged frame aborts the session, since
// skipping it would desynchronize the fixed frame cadence.
//
// ctx is only checked between frames, never in the middle of one. Run
// returns ctx.Err() when the context is done and leaves the pipeline in the
// Done state.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := p.close(); err == nil {
			err = cerr
		}
		// Stopping on a cancelled context is a clean end of the session.
		if err != nil && err != ctx.Err() {
			p.state = Fatal
		} else {
			p.state = Done
		}
	}()

	p.state = AwaitStreamHeader
	if err := p.processHeader(); err != nil {
		return err
	}

	p.state = NegotiateDevice
	if err := p.openSink(); err != nil {
		return err
	}

	return p.copyFrames(ctx)
}

func (p *Pipeline) processHeader() error {
	h, err := p.in.ReadStreamHeader()
	if err != nil {
		return err
	}
	if h.Width%2 != 0 || h.Height%2 != 0 {
		return errors.Wrapf(ErrOddGeometry, "%dx%d", h.Width, h.Height)
	}

	p.width, p.height = h.Width, h.Height
	log.Info("stream %dx%d, %d bytes per frame", p.width, p.height, h.FrameSize())
	return nil
}

func (p *Pipeline) openSink() error {
	sink, err := p.cfg.Open(p.cfg.Device, v4l2.Config{
		Format: v4l2.V4L2_PIX_FMT_YUV420,
		Width:  uint(p.width),
		Height: uint(p.height),
	})
	if err != nil {
		return err
	}
	p.sink = sink
	return nil
}

func (p *Pipeline) copyFrames(ctx context.Context) error {
	p.planar = make([]byte, color.YUV420Size(p.width, p.height))
	p.rgb = p.alloc.Alloc(color.RGBSize(p.width, p.height))

	for {
		if err := ctx.Err(); err != nil {
			log.Info("stopping after %d frames: %v", p.frames, err)
			return err
		}

		p.state = AwaitFrameHeader
		h, ok, err := p.in.ReadHeader(y4m.FrameMagic)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("end of stream after %d frames", p.frames)
			return nil
		}
		if (h.Width != 0 && h.Width != p.width) || (h.Height != 0 && h.Height != p.height) {
			return errors.Wrapf(ErrGeometryChange, "%dx%d to %dx%d", p.width, p.height, h.Width, h.Height)
		}

		p.state = ProcessFrame
		if err := p.processFrame(); err != nil {
			return err
		}
	}
}

func (p *Pipeline) processFrame() error {
	if err := p.in.ReadFrame(p.planar); err != nil {
		return err
	}

	color.YUV420ToRGB(p.rgb, p.planar, p.width, p.height)

	// The filter hands back a new buffer. Take ownership of it and release
	// the one it was given.
	next := p.cfg.Filter.Filter(p.rgb, p.width, p.height)
	if len(next) > 0 && len(p.rgb) > 0 && &next[0] == &p.rgb[0] {
		return ErrFilterAliased
	}
	p.alloc.Release(p.rgb)
	p.rgb = next
	if len(p.rgb) != color.RGBSize(p.width, p.height) {
		return errors.Wrapf(ErrFilterSize, "got %d bytes, want %d", len(p.rgb), color.RGBSize(p.width, p.height))
	}

	color.RGBToYUV420(p.planar, p.rgb, p.width, p.height)

	if _, err := p.sink.Write(p.planar); err != nil {
		return err
	}

	p.frames++
	log.Debug("frame %d written", p.frames)
	return nil
}

// close releases the frame buffers and closes the sink, whichever of them
// exist at this point.
func (p *Pipeline) close() error {
	if p.rgb != nil {
		p.alloc.Release(p.rgb)
		p.rgb = nil
	}
	p.planar = nil

	if p.sink == nil {
		return nil
	}
	err := p.sink.Close()
	p.sink = nil
	return errors.Wrap(err, "close")
}
