package conlang

import (
	"github.com/pkg/errors"
)

// Error kinds returned by the library. Every failure wraps exactly one of
// them, so callers can test with errors.Is or classify with KindOf.
var (
	// ErrInvalidArgument reports a missing required field or an empty name.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownName reports a reference to an undeclared symbol, feature,
	// category, grammeme, word class, exponent, template or rule.
	ErrUnknownName = errors.New("unknown name")
	// ErrConflict reports a duplicate name or a contradictory ordering.
	ErrConflict = errors.New("conflict")
	// ErrUnsatisfiable reports a request nothing in the language can meet.
	ErrUnsatisfiable = errors.New("unsatisfiable")
	// ErrSoft reports a recoverable failure. Pipelines log it and carry on.
	ErrSoft = errors.New("soft failure")
)

// Kind classifies an error returned by the library.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidArgument
	KindUnknownName
	KindConflict
	KindUnsatisfiable
	KindSoft
	KindOther
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidArgument:
		return "invalid argument"
	case KindUnknownName:
		return "unknown name"
	case KindConflict:
		return "conflict"
	case KindUnsatisfiable:
		return "unsatisfiable"
	case KindSoft:
		return "soft failure"
	}
	return "other"
}

// KindOf returns the kind of err, KindNone for nil and KindOther for errors
// that do not come from this package.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrUnknownName):
		return KindUnknownName
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnsatisfiable):
		return KindUnsatisfiable
	case errors.Is(err, ErrSoft):
		return KindSoft
	}
	return KindOther
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func unknownf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnknownName, format, args...)
}

func conflictf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

func unsatisfiablef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsatisfiable, format, args...)
}

func softf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSoft, format, args...)
}
