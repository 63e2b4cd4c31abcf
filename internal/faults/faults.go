package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a target that does not exist as the expected kind.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a rename whose destination already exists.
	ErrConflict = errors.New("conflict")
	// ErrUnsupportedFile marks a file whose extension is not managed.
	ErrUnsupportedFile = errors.New("unsupported file")
	// ErrIntegrity marks a post-run census that lost files or directories.
	ErrIntegrity = errors.New("integrity check failed")
	// ErrTagWrite marks a metadata rewrite that produced no usable output.
	ErrTagWrite = errors.New("tag write failed")
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("usage error")
	// ErrConfiguration marks an unusable configuration document.
	ErrConfiguration = errors.New("configuration error")
	// ErrLocked marks a target that another apply run currently holds.
	ErrLocked = errors.New("target locked")
)

// Exit codes returned by ExitCode.
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConflict    = 3
	ExitUnsupported = 4
	ExitIntegrity   = 5
	ExitTagWrite    = 6
	ExitNotFound    = 7
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above; a nil marker leaves the error unclassified.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	switch {
	case marker == nil && err == nil:
		return errors.New(detail)
	case marker == nil:
		return fmt.Errorf("%s: %w", detail, err)
	case err == nil:
		return fmt.Errorf("%w: %s", marker, detail)
	default:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage), errors.Is(err, ErrConfiguration):
		return ExitUsage
	case errors.Is(err, ErrConflict), errors.Is(err, ErrLocked):
		return ExitConflict
	case errors.Is(err, ErrUnsupportedFile):
		return ExitUnsupported
	case errors.Is(err, ErrIntegrity):
		return ExitIntegrity
	case errors.Is(err, ErrTagWrite):
		return ExitTagWrite
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
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
		return "rename failure"
	}
	return strings.Join(parts, ": ")
}
