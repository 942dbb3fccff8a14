package scoring

import (
	"fmt"
	"time"
)

// FormatElapsed renders seconds the way the report always has: H:MM:SS with
// an unpadded hour, prefixed with a day count once it crosses a day.
func FormatElapsed(seconds int64) string {
	days := seconds / 86400
	rem := seconds % 86400
	h := rem / 3600
	m := rem % 3600 / 60
	s := rem % 60

	hms := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	switch {
	case days == 0:
		return hms
	case days == 1:
		return fmt.Sprintf("1 day, %s", hms)
	default:
		return fmt.Sprintf("%d days, %s", days, hms)
	}
}

// FormatAcceptDate renders an acceptance instant as M/D/Y with the year
// reduced modulo 1000, matching the historical report cells.
func FormatAcceptDate(epoch int64) string {
	t := time.Unix(epoch, 0).UTC()
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year()%1000)
}
