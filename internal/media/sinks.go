//////////////////////////////////////////////////////////////////////////////
//
// Video sink interfaces and universal implementations
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package media

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// VideoSink consumes whole raw frames, one per Write call (e.g. a V4L2
// output device).
type VideoSink interface {
	io.Closer
	io.Writer
}

// FileSink is a generic file writer, useful for testing or writing raw
// frames to a pipe
type FileSink struct {
	file *os.File
}

// NewFileSink creates (or truncates) the file at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	return &FileSink{file: f}, nil
}

// Close file sink
func (s *FileSink) Close() error {
	if s.file == nil {
		return errSinkClosed
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Write one frame to the file
func (s *FileSink) Write(p []byte) (int, error) {
	if s.file == nil {
		return 0, errSinkClosed
	}
	n, err := s.file.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "write")
	}
	return n, nil
}
