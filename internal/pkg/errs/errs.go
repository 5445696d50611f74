package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches a sentinel so errors.Is(err, sentinel) holds while the
// original cause stays intact for logging.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, sentinel: markErr}
}

// marked places the sentinel in the stdlib unwrap chain. cockroachdb's
// Mark keeps the sentinel outside Unwrap, where errors.Is cannot see it.
type marked struct {
	cause    error
	sentinel error
}

func (m *marked) Error() string {
	return m.cause.Error()
}

func (m *marked) Unwrap() []error {
	return []error{m.cause, m.sentinel}
}

func (m *marked) Format(s fmt.State, verb rune) {
	if f, ok := m.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), m.cause)
}
