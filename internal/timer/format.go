package timer

import (
	"fmt"
	"runtime"
	"time"
)

// windowsStatOverhead is subtracted from elapsed durations on Windows to
// compensate for the cost of stat-ing files on that platform's file systems,
// keeping timings comparable with Unix. Historically 0.1s.
const windowsStatOverhead = 100 * time.Millisecond

// squeeze applies the platform timing adjustment, flooring at zero so an
// elapsed duration is never reported negative.
func squeeze(d time.Duration) time.Duration {
	if runtime.GOOS != "windows" {
		return d
	}
	d -= windowsStatOverhead
	if d < 0 {
		return 0
	}
	return d
}

// FormatElapsed renders an elapsed duration in the verbose form used by
// cumulative reports: seconds with two decimals followed by minutes with
// one, e.g. "1.00s, 0.0 min".
func FormatElapsed(d time.Duration) string {
	t := squeeze(d).Seconds()
	return fmt.Sprintf("%.2fs, %.1f min", t, t/60)
}

// ShortFormatElapsed renders an elapsed duration in the terse fixed-width
// form used by checkpoint reports: seconds with one decimal under a minute
// (" 0.3s"), minutes with one decimal above it (" 1.5min").
func ShortFormatElapsed(d time.Duration) string {
	t := squeeze(d).Seconds()
	if t > 60 {
		return fmt.Sprintf("%4.1fmin", t/60)
	}
	return fmt.Sprintf("%4.1fs", t)
}
