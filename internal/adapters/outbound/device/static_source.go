package device

import "context"

// StaticSource implements domain.CodeSource with a fixed capture result.
// It backs device.codes in the config and stands in for a reader in tests.
type StaticSource struct {
	codes []string
	err   error
}

// NewStatic returns a source that yields the same codes on every capture.
func NewStatic(codes ...string) *StaticSource {
	c := make([]string, len(codes))
	copy(c, codes)
	return &StaticSource{codes: c}
}

// NewStaticError returns a source whose every capture fails with err.
func NewStaticError(err error) *StaticSource {
	return &StaticSource{err: err}
}

// Capture returns a copy of the configured codes, or the configured error.
func (s *StaticSource) Capture(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out, nil
}
