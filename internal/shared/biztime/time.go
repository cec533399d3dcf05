package biztime

import "time"

// Now returns the current time in UTC. All persistence and billing math
// operates on UTC timestamps.
func Now() time.Time {
	return time.Now().UTC()
}

// NowPtr returns a pointer to the current UTC time.
func NowPtr() *time.Time {
	t := Now()
	return &t
}

// ToUTC normalizes t to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// ToUTCPtr normalizes a nullable timestamp to UTC.
func ToUTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
