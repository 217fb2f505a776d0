package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the given location, or local time when
// Location is nil.
type SystemClock struct {
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}
