package pipeline

import (
	"strings"

	"github.com/lanikai/oilcam/internal/media"
	"github.com/lanikai/oilcam/internal/v4l2"
)

// OpenFunc opens the sink that receives encoded frames, negotiating cfg
// where the sink supports it.
type OpenFunc func(path string, cfg v4l2.Config) (media.VideoSink, error)

// OpenSink opens Video4Linux2 devices ("/dev/video*") as V4L2 outputs and
// anything else as a plain file.
func OpenSink(path string, cfg v4l2.Config) (media.VideoSink, error) {
	if strings.HasPrefix(path, "/dev/video") {
		out, err := v4l2.Open(path, cfg)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	log.Info("%s is not a video device; writing raw %v frames", path, cfg)
	s, err := media.NewFileSink(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
