package y4m

import errors "golang.org/x/xerrors"

var (
	ErrMalformedHeader = errors.New("y4m: malformed header")
	ErrMalformedFrame  = errors.New("y4m: malformed frame")
	ErrMissingHeader   = errors.New("y4m: missing header")
	ErrMissingGeometry = errors.New("y4m: frame width or height is missing")
)

// malformed returns ErrMalformedHeader annotated with the header kind, e.g.
// "malformed FRAME header".
func malformed(magic string, reason string) error {
	return errors.Errorf("malformed %s header (%s): %w", magic, reason, ErrMalformedHeader)
}
