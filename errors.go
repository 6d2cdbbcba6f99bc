package chainalysis

import (
	"github.com/pkg/errors"
)

var (
	// ErrDataUnavailable is returned when a remote call fails or the response
	// lacks the field we expected.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedData is returned when a response does not have the expected shape,
	// ie. a misaligned hex payload.
	ErrMalformedData = errors.New("malformed data")

	// ErrConfiguration is returned for missing or invalid configuration and credentials.
	ErrConfiguration = errors.New("configuration error")
)

// kindError attaches one of the sentinels above to a cause.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

func wrapKind(kind error, err error, msg string) error {
	if err == nil {
		return errors.WithStack(&kindError{kind: kind, cause: errors.New(msg)})
	}
	return errors.WithStack(&kindError{kind: kind, cause: errors.WithMessage(err, msg)})
}

func wrapKindf(kind error, err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.WithStack(&kindError{kind: kind, cause: errors.Errorf(format, args...)})
	}
	return errors.WithStack(&kindError{kind: kind, cause: errors.WithMessagef(err, format, args...)})
}
