package valueobjects

// Status is the subscription lifecycle state.
type Status string

const (
	StatusTrialing  Status = "trialing"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

// CanUseService reports whether the status alone grants access.
// A cancelled-at-period-end subscription also retains access until the
// period lapses; that check needs the period dates and lives on the
// aggregate.
func (s Status) CanUseService() bool {
	return s == StatusActive || s == StatusTrialing
}

// CanTransitionTo is the single transition table for the lifecycle state
// machine. Every operation on the aggregate goes through it; illegal
// transitions are rejected here rather than by scattered guard clauses.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusTrialing:  {StatusActive, StatusCancelled, StatusExpired},
		StatusActive:    {StatusCancelled},
		StatusCancelled: {StatusActive},
		StatusExpired:   {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[Status]bool{
	StatusTrialing:  true,
	StatusActive:    true,
	StatusCancelled: true,
	StatusExpired:   true,
}
