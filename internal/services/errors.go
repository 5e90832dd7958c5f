package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrecondition marks failures that invalidate the whole run, such as a
	// missing or non-directory target. Nothing else may end a run early.
	ErrPrecondition = errors.New("precondition failed")
	// ErrExternalTool marks failures of external collaborators such as file(1).
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrTimeout       = errors.New("timeout")
	// ErrTransient marks per-file failures that leave the rest of the run
	// unaffected: failed moves, folder creation, suffix exhaustion.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that carries component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// EndsRun reports whether an error from the organize pipeline invalidates the
// whole run. Per-file failures never do; only precondition failures.
func EndsRun(err error) bool {
	return errors.Is(err, ErrPrecondition)
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
