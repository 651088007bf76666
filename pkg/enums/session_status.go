package enums

import "fmt"

// SessionStatus tracks the lifecycle of a guided shopping session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusAbandoned  SessionStatus = "abandoned"
)

var validSessionStatuses = []SessionStatus{
	SessionStatusInProgress,
	SessionStatusCompleted,
	SessionStatusAbandoned,
}

// String implements fmt.Stringer.
func (s SessionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SessionStatus.
func (s SessionStatus) IsValid() bool {
	for _, candidate := range validSessionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further writes.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusAbandoned
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// Transitions are one-directional: in_progress may become completed or
// abandoned; terminal states never change again.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	if s != SessionStatusInProgress {
		return false
	}
	return target.IsTerminal()
}

// ParseSessionStatus converts raw input into a SessionStatus.
func ParseSessionStatus(value string) (SessionStatus, error) {
	for _, candidate := range validSessionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid session status %q", value)
}
