package scale

import (
	"math"
	"sort"
	"time"
)

// Interval is a calendar interval such as "every 5 minutes" or "every month".
type Interval struct {
	floorRaw  func(time.Time) time.Time
	offsetRaw func(time.Time, int) time.Time
	test      func(time.Time) bool
}

// Floor returns the latest interval boundary at or before t.
func (iv Interval) Floor(t time.Time) time.Time {
	d := iv.floorRaw(t.UTC())
	for iv.test != nil && !iv.test(d) {
		d = iv.floorRaw(d.Add(-time.Nanosecond))
	}
	return d
}

// Next returns the boundary after the boundary b.
func (iv Interval) Next(b time.Time) time.Time {
	d := iv.offsetRaw(b, 1)
	for iv.test != nil && !iv.test(d) {
		d = iv.offsetRaw(d, 1)
	}
	return d
}

// Ceil returns the earliest interval boundary at or after t.
func (iv Interval) Ceil(t time.Time) time.Time {
	d := iv.Floor(t)
	if d.Before(t) {
		d = iv.Next(d)
	}
	return d
}

// Range returns the boundaries in [start, stop).
func (iv Interval) Range(start, stop time.Time) []time.Time {
	var out []time.Time
	for d := iv.Ceil(start); d.Before(stop); d = iv.Next(d) {
		out = append(out, d)
	}
	return out
}

// =============================================================================
// Calendar units
// =============================================================================

func fixed(unit time.Duration, step int) Interval {
	size := unit * time.Duration(step)
	return Interval{
		floorRaw: func(t time.Time) time.Time {
			return t.Truncate(size)
		},
		offsetRaw: func(t time.Time, n int) time.Time {
			return t.Add(size * time.Duration(n))
		},
	}
}

func withField(iv Interval, field func(time.Time) int, step int) Interval {
	if step > 1 {
		iv.test = func(t time.Time) bool { return field(t)%step == 0 }
	}
	return iv
}

// Millisecond returns an interval of step milliseconds.
func Millisecond(step int) Interval { return fixed(time.Millisecond, max(step, 1)) }

// Second returns an interval of step seconds, aligned within the minute.
func Second(step int) Interval {
	return withField(fixed(time.Second, 1), func(t time.Time) int { return t.Second() }, step)
}

// Minute returns an interval of step minutes, aligned within the hour.
func Minute(step int) Interval {
	return withField(fixed(time.Minute, 1), func(t time.Time) int { return t.Minute() }, step)
}

// Hour returns an interval of step hours, aligned within the day.
func Hour(step int) Interval {
	return withField(fixed(time.Hour, 1), func(t time.Time) int { return t.Hour() }, step)
}

// Day returns an interval of step days, aligned within the month.
func Day(step int) Interval {
	iv := Interval{
		floorRaw: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		},
		offsetRaw: func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
	}
	return withField(iv, func(t time.Time) int { return t.Day() - 1 }, step)
}

// Week returns the interval of weeks starting on Sunday.
func Week() Interval {
	return Interval{
		floorRaw: func(t time.Time) time.Time {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return d.AddDate(0, 0, -int(d.Weekday()))
		},
		offsetRaw: func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
	}
}

// Month returns an interval of step months, aligned within the year.
func Month(step int) Interval {
	iv := Interval{
		floorRaw: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		},
		offsetRaw: func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
	}
	return withField(iv, func(t time.Time) int { return int(t.Month()) - 1 }, step)
}

// Year returns an interval of step years.
func Year(step int) Interval {
	step = max(step, 1)
	return Interval{
		floorRaw: func(t time.Time) time.Time {
			y := t.Year() - mod(t.Year(), step)
			return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		},
		offsetRaw: func(t time.Time, n int) time.Time { return t.AddDate(n*step, 0, 0) },
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// =============================================================================
// Interval selection
// =============================================================================

const (
	durationSecond = float64(time.Second / time.Millisecond)
	durationMinute = durationSecond * 60
	durationHour   = durationMinute * 60
	durationDay    = durationHour * 24
	durationWeek   = durationDay * 7
	durationMonth  = durationDay * 30
	durationYear   = durationDay * 365
)

type tickInterval struct {
	make     func() Interval
	duration float64 // milliseconds
}

var tickIntervals = []tickInterval{
	{func() Interval { return Second(1) }, durationSecond},
	{func() Interval { return Second(5) }, 5 * durationSecond},
	{func() Interval { return Second(15) }, 15 * durationSecond},
	{func() Interval { return Second(30) }, 30 * durationSecond},
	{func() Interval { return Minute(1) }, durationMinute},
	{func() Interval { return Minute(5) }, 5 * durationMinute},
	{func() Interval { return Minute(15) }, 15 * durationMinute},
	{func() Interval { return Minute(30) }, 30 * durationMinute},
	{func() Interval { return Hour(1) }, durationHour},
	{func() Interval { return Hour(3) }, 3 * durationHour},
	{func() Interval { return Hour(6) }, 6 * durationHour},
	{func() Interval { return Hour(12) }, 12 * durationHour},
	{func() Interval { return Day(1) }, durationDay},
	{func() Interval { return Day(2) }, 2 * durationDay},
	{Week, durationWeek},
	{func() Interval { return Month(1) }, durationMonth},
	{func() Interval { return Month(3) }, 3 * durationMonth},
	{func() Interval { return Year(1) }, durationYear},
}

// TickInterval picks the calendar interval that yields about count ticks
// between start and stop.
func TickInterval(start, stop time.Time, count int) Interval {
	a, b := millis(start), millis(stop)
	target := math.Abs(b-a) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return tickIntervals[i].duration > target
	})
	switch {
	case i == len(tickIntervals):
		step := tickStep(a/durationYear, b/durationYear, float64(count))
		return Year(int(math.Max(1, math.Round(step))))
	case i == 0:
		step := tickStep(a, b, float64(count))
		return Millisecond(int(math.Max(1, math.Round(step))))
	}
	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if target/lo.duration < hi.duration/target {
		return lo.make()
	}
	return hi.make()
}

func millis(t time.Time) float64 {
	return float64(t.UnixMilli())
}
