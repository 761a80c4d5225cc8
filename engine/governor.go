package engine

import "time"

// SleepDuration returns how long to sleep after a tick that took delta to stay at fps
// A tick at or over budget sleeps zero; fps <= 0 means uncapped
func SleepDuration(fps int, delta time.Duration) time.Duration {
	if fps <= 0 {
		return 0
	}
	period := time.Second / time.Duration(fps)
	if delta >= period {
		return 0
	}
	return period - delta
}
