package attendance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")

	// ErrLessonClosed is returned by CheckIn while the lesson entry state is closed
	ErrLessonClosed = fmt.Errorf("%w: Lesson closed", ErrConflict)
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Message strips the sentinel prefix so handlers can show the detail to the user
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrConflict} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}
