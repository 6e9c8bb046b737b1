//go:build !linux
// +build !linux

package v4l2

import "github.com/pkg/errors"

var errNotSupported = errors.New("v4l2: not supported on this operating system")

type Output struct{}

func Open(path string, cfg Config) (*Output, error) {
	return nil, errNotSupported
}

func (out *Output) Format() Config {
	return Config{}
}

func (out *Output) Write(p []byte) (int, error) {
	return 0, errNotSupported
}

func (out *Output) Close() error {
	return errNotSupported
}
