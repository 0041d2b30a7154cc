package material

import "time"

// SetNow replaces the clock until the returned func is called.
func SetNow(f func() time.Time) (reset func()) {
	nowFunc = f
	return func() { nowFunc = time.Now }
}
