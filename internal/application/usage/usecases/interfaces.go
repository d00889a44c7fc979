package usecases

import (
	"time"

	"construlink/internal/shared/biztime"
)

// Clock abstracts wall-clock time so month keys and access checks can be
// tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return biztime.NowUTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return realClock{} }
