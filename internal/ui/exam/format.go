package exam

import "fmt"

// FormatClock renders remaining seconds as mm:ss. A negative value means
// the test has not started yet and is shown as a placeholder.
func FormatClock(seconds int) string {
	if seconds < 0 {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
