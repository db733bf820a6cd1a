package scale

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

// MultiFormat formats a tick instant at the coarsest resolution that shows
// it exactly: ".123" for milliseconds, ":05" for seconds, "03:04" for
// minutes, "03 PM" for hours, "Mon 02" for days, "Jan 02" for week starts,
// "January" for months and "2006" for years.
func MultiFormat(t time.Time) string {
	t = t.UTC()
	switch {
	case Second(1).Floor(t).Before(t):
		return fmt.Sprintf(".%03d", t.Nanosecond()/int(time.Millisecond))
	case Minute(1).Floor(t).Before(t):
		return strftime.Format(":%S", t)
	case Hour(1).Floor(t).Before(t):
		return strftime.Format("%I:%M", t)
	case Day(1).Floor(t).Before(t):
		return strftime.Format("%I %p", t)
	case Month(1).Floor(t).Before(t):
		if Week().Floor(t).Before(t) {
			return strftime.Format("%a %d", t)
		}
		return strftime.Format("%b %d", t)
	case Year(1).Floor(t).Before(t):
		return strftime.Format("%B", t)
	default:
		return strftime.Format("%Y", t)
	}
}
