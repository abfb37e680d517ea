package data

import "github.com/pkg/errors"

// Sentinel error kinds, matching the taxonomy in spec.md §7. Fatal kinds
// abort the current file; non-fatal kinds are logged and processing
// continues with best-effort output.
var (
	// ErrLoad: model file missing, unreadable, or zero triangles.
	ErrLoad = errors.New("load error")
	// ErrConfigOutOfRange: a configuration value makes geometry impossible.
	ErrConfigOutOfRange = errors.New("config out of range")
	// ErrOutput: the output file could not be opened or written.
	ErrOutput = errors.New("output error")
	// ErrUnsupportedOption: an unknown infill/support/output type was named.
	ErrUnsupportedOption = errors.New("unsupported option")
)

// WrapLoad wraps err as an ErrLoad with additional context.
func WrapLoad(err error, context string) error {
	return errors.Wrapf(ErrLoad, "%s: %v", context, err)
}

// WrapConfig wraps a config validation failure.
func WrapConfig(context string) error {
	return errors.Wrap(ErrConfigOutOfRange, context)
}

// WrapOutput wraps an output I/O failure.
func WrapOutput(err error, context string) error {
	return errors.Wrapf(ErrOutput, "%s: %v", context, err)
}

// WrapUnsupported wraps an unrecognized option value.
func WrapUnsupported(name string) error {
	return errors.Wrapf(ErrUnsupportedOption, "%q", name)
}

// Is reports whether err is (or wraps) target, using pkg/errors.Cause
// semantics as well as the standard library's errors.Is chain.
func Is(err, target error) bool {
	return errors.Is(err, target) || errors.Cause(err) == target
}
