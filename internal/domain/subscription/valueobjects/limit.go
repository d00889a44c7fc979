package valueobjects

import "fmt"

// Limit is a plan cap on a resource: either a finite count or unlimited.
// Using an explicit unlimited flag instead of a sentinel value keeps the
// cap out of arithmetic unless it is known to be finite.
type Limit struct {
	value     int
	unlimited bool
}

// FiniteLimit builds a finite cap. Negative values are clamped to zero.
func FiniteLimit(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{value: n}
}

// UnlimitedLimit builds a cap that always allows.
func UnlimitedLimit() Limit {
	return Limit{unlimited: true}
}

// IsUnlimited reports whether the cap is unbounded.
func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Value returns the finite cap. Only meaningful when !IsUnlimited().
func (l Limit) Value() int {
	return l.value
}

// Allows reports whether one more unit may be consumed at the given usage.
func (l Limit) Allows(current int) bool {
	if l.unlimited {
		return true
	}
	return current < l.value
}

// AtLeast reports whether this limit is at least as generous as other.
func (l Limit) AtLeast(other Limit) bool {
	if l.unlimited {
		return true
	}
	if other.unlimited {
		return false
	}
	return l.value >= other.value
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.value)
}
