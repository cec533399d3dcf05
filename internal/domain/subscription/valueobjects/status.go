package valueobjects

import "fmt"

// Status represents the lifecycle status of a subscription.
type Status string

const (
	StatusActive     Status = "active"
	StatusCanceled   Status = "canceled"
	StatusPastDue    Status = "past_due"
	StatusTrialing   Status = "trialing"
	StatusIncomplete Status = "incomplete"
	StatusUnpaid     Status = "unpaid"
	StatusExpired    Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

// CanUseService reports whether the status grants access to the product.
func (s Status) CanUseService() bool {
	return s == StatusActive || s == StatusTrialing
}

// CanTransitionTo reports whether a transition to target is part of the
// lifecycle. Generic updates go through the same matrix; setting the
// current status again is always a no-op.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusIncomplete: {StatusActive, StatusTrialing, StatusExpired, StatusCanceled},
		StatusTrialing:   {StatusActive, StatusPastDue, StatusCanceled, StatusExpired},
		StatusActive:     {StatusPastDue, StatusUnpaid, StatusCanceled, StatusExpired},
		StatusPastDue:    {StatusActive, StatusUnpaid, StatusCanceled, StatusExpired},
		StatusUnpaid:     {StatusActive, StatusCanceled, StatusExpired},
		StatusCanceled:   {StatusActive},
		StatusExpired:    {StatusActive},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[Status]bool{
	StatusActive:     true,
	StatusCanceled:   true,
	StatusPastDue:    true,
	StatusTrialing:   true,
	StatusIncomplete: true,
	StatusUnpaid:     true,
	StatusExpired:    true,
}

// NewStatus creates a Status from a string.
func NewStatus(value string) (Status, error) {
	s := Status(value)
	if !ValidStatuses[s] {
		return "", fmt.Errorf("invalid subscription status: %s", value)
	}
	return s, nil
}
