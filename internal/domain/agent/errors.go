package agent

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("agent not found")
	ErrMissingID = errors.New("agent id is required")
	ErrInvalid   = errors.New("invalid agent")
)

// NotFoundError carries the identifier that failed to resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(id string) error {
	return &NotFoundError{ID: id}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the invariants a stored record must hold.
func (a *Agent) Validate() error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.Name == "" {
		return invalid("name is required")
	}
	if !a.Status.Valid() {
		return invalid("status %q must be %q or %q", a.Status, StatusActive, StatusInactive)
	}
	if a.Interactions < 0 {
		return invalid("interactions must not be negative")
	}
	if a.AvmScore < 0 || a.AvmScore > 10 {
		return invalid("avmScore must be between 0 and 10")
	}
	if a.CsatScore < 0 || a.CsatScore > 100 {
		return invalid("csatScore must be between 0 and 100")
	}
	if a.PerformanceScore < 0 || a.PerformanceScore > 100 {
		return invalid("performanceScore must be between 0 and 100")
	}
	return nil
}
