package utils

import (
	"fmt"
	"strings"
)

// MultiError collects independent failures that should not stop the caller.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	msgs := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d error(s): %s", len(m.Errors), strings.Join(msgs, "; "))
}

func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

func (m *MultiError) Len() int {
	return len(m.Errors)
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// ErrOrNil returns nil when nothing was collected, so callers can return it directly.
func (m *MultiError) ErrOrNil() error {
	if m == nil || len(m.Errors) == 0 {
		return nil
	}
	return m
}
