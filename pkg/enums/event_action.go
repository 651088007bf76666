package enums

import "fmt"

// EventAction is a user's recorded reaction to a shown product.
// ActionNone is a neutral impression: the product was shown but the user
// neither liked nor disliked it.
type EventAction string

const (
	EventActionLike    EventAction = "like"
	EventActionDislike EventAction = "dislike"
	EventActionNone    EventAction = "none"
)

var validEventActions = []EventAction{
	EventActionLike,
	EventActionDislike,
	EventActionNone,
}

// String implements fmt.Stringer.
func (e EventAction) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventAction.
func (e EventAction) IsValid() bool {
	for _, candidate := range validEventActions {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventAction converts raw input into an EventAction.
func ParseEventAction(value string) (EventAction, error) {
	for _, candidate := range validEventActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event action %q", value)
}
