package pipeline

import "github.com/pkg/errors"

var (
	// 4:2:0 chroma is addressed per 2x2 block, so odd dimensions are refused
	// up front rather than converted with a truncated last row or column.
	ErrOddGeometry    = errors.New("frame width and height must be even")
	ErrGeometryChange = errors.New("frame geometry changed mid-stream")
	ErrFilterSize     = errors.New("filter returned a buffer of the wrong size")
	ErrFilterAliased  = errors.New("filter returned its input buffer")
)
