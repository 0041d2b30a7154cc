package user

import "time"

// SetNow replaces the session clock and returns a func restoring it.
func SetNow(f func() time.Time) (reset func()) {
	nowFunc = f
	return func() { nowFunc = time.Now }
}
