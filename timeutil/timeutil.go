package timeutil

import "time"

// TruncateSecond drops the sub-second component of t.
func TruncateSecond(t time.Time) time.Time {
	return t.Truncate(time.Second)
}

// SameSecond reports whether a and b fall within the same whole second.
func SameSecond(a, b time.Time) bool {
	return a.Unix() == b.Unix()
}

// DigitalString formats t as a 24-hour HH:MM:SS digital readout.
func DigitalString(t time.Time) string {
	return t.Format("15:04:05")
}

// Clock12 decomposes t into 12-hour clock components: hour in 1..12,
// minute and second in 0..59.
func Clock12(t time.Time) (hour, minute, second int) {
	hour = t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return hour, t.Minute(), t.Second()
}
