package encoding

import "time"

const (
	isoSeconds      = "2006-01-02T15:04:05-07:00"
	isoMicroseconds = "2006-01-02T15:04:05.000000-07:00"
)

// FormatTime renders t as an ISO-8601 timestamp in UTC. Microseconds are
// included only when non-zero, and the offset is always written as +00:00.
func FormatTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(isoMicroseconds)
	}
	return t.Format(isoSeconds)
}
