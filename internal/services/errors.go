package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO marks open/read/write/seek failures on archives and extracted files.
	ErrIO = errors.New("io error")
	// ErrFormat marks malformed or incomplete archive structure.
	ErrFormat = errors.New("format error")
	// ErrTool marks external conversion tool failures.
	ErrTool = errors.New("tool error")
	// ErrPersistence marks catalog engine failures.
	ErrPersistence = errors.New("persistence error")
	// ErrCancelled marks a cooperatively aborted run.
	ErrCancelled = errors.New("cancelled")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
