package timing

import (
	"fmt"
	"time"
)

// Deadline is an instant that can be compared against the active clock.
//
// The zero value is Epoch, which has always elapsed.
type Deadline struct {
	t time.Time
}

var (
	// Epoch is a deadline that has always elapsed.
	Epoch = Deadline{}
	// MaxDeadline is a deadline that never elapses.
	MaxDeadline = Deadline{t: time.Unix(1<<62, 0)}
)

// At returns a deadline at the instant t.
func At(t time.Time) Deadline {
	return Deadline{t: t}
}

// Timeout returns a deadline d from now.
func Timeout(d time.Duration) Deadline {
	return Deadline{t: Now().Add(d)}
}

// Time returns the deadline instant.
func (d Deadline) Time() time.Time {
	return d.t
}

// HasElapsed reports whether the active clock has reached the deadline.
func (d Deadline) HasElapsed() bool {
	return d.ElapsedAt(Now())
}

// ElapsedAt reports whether now has reached the deadline.
func (d Deadline) ElapsedAt(now time.Time) bool {
	return !now.Before(d.t)
}

// TimeLeft returns the duration until the deadline, or false if it has
// already elapsed.
func (d Deadline) TimeLeft() (time.Duration, bool) {
	left := d.t.Sub(Now())
	if left <= 0 {
		return 0, false
	}
	return left, true
}

// IsMax reports whether d never elapses.
func (d Deadline) IsMax() bool {
	return !d.t.Before(MaxDeadline.t)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Deadline) Compare(other Deadline) int {
	return d.t.Compare(other.t)
}

// Before reports whether d is strictly before other.
func (d Deadline) Before(other Deadline) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other.
func (d Deadline) After(other Deadline) bool {
	return d.t.After(other.t)
}

// Add returns the deadline shifted by dur.
func (d Deadline) Add(dur time.Duration) Deadline {
	if d.IsMax() {
		return d
	}
	return Deadline{t: d.t.Add(dur)}
}

// Min returns the earliest of d and other.
func (d Deadline) Min(other Deadline) Deadline {
	if other.Before(d) {
		return other
	}
	return d
}

// Max returns the latest of d and other.
func (d Deadline) Max(other Deadline) Deadline {
	if other.After(d) {
		return other
	}
	return d
}

func (d Deadline) String() string {
	switch {
	case d.t.IsZero():
		return "Deadline(epoch)"
	case d.IsMax():
		return "Deadline(max)"
	}
	left := d.t.Sub(Now())
	if left <= 0 {
		return fmt.Sprintf("Deadline(elapsed %s ago)", -left)
	}
	return fmt.Sprintf("Deadline(%s left)", left)
}
