package scale

import (
	"time"
)

// Time maps instants onto a numeric range.
type Time struct {
	d0, d1 time.Time
	r0, r1 float64
}

// DefaultTimeDomain is the domain of a fresh Time scale: the first day of
// the Unix epoch.
var DefaultTimeDomain = [2]time.Time{
	time.Unix(0, 0).UTC(),
	time.Unix(0, 0).UTC().AddDate(0, 0, 1),
}

// NewTime returns a scale over DefaultTimeDomain with the given range.
func NewTime(r0, r1 float64) *Time {
	return &Time{d0: DefaultTimeDomain[0], d1: DefaultTimeDomain[1], r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (s *Time) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// SetDomain replaces the domain.
func (s *Time) SetDomain(d0, d1 time.Time) *Time {
	s.d0, s.d1 = d0.UTC(), d1.UTC()
	return s
}

// Range returns the range bounds.
func (s *Time) Range() (float64, float64) { return s.r0, s.r1 }

// SetRange replaces the range.
func (s *Time) SetRange(r0, r1 float64) *Time {
	s.r0, s.r1 = r0, r1
	return s
}

// Map returns the range value for t.
func (s *Time) Map(t time.Time) float64 {
	span := s.d1.Sub(s.d0)
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	f := float64(t.Sub(s.d0)) / float64(span)
	return s.r0 + f*(s.r1-s.r0)
}

// Invert returns the instant for a range value.
func (s *Time) Invert(x float64) time.Time {
	span := s.r1 - s.r0
	if span == 0 {
		return s.d0.Add(s.d1.Sub(s.d0) / 2)
	}
	f := (x - s.r0) / span
	return s.d0.Add(time.Duration(f * float64(s.d1.Sub(s.d0))))
}

// Nice extends the domain outward to the boundaries of the interval that
// would produce about count ticks.
func (s *Time) Nice(count int) *Time {
	return s.NiceTo(TickInterval(s.d0, s.d1, count))
}

// NiceTo extends the domain outward to boundaries of iv.
func (s *Time) NiceTo(iv Interval) *Time {
	lo, hi := s.d0, s.d1
	reversed := hi.Before(lo)
	if reversed {
		lo, hi = hi, lo
	}
	lo, hi = iv.Floor(lo), iv.Ceil(hi)
	if reversed {
		lo, hi = hi, lo
	}
	s.d0, s.d1 = lo, hi
	return s
}

// Ticks returns the interval boundaries inside the domain for about count
// ticks, both ends inclusive.
func (s *Time) Ticks(count int) []time.Time {
	lo, hi := s.d0, s.d1
	reversed := hi.Before(lo)
	if reversed {
		lo, hi = hi, lo
	}
	out := TickInterval(lo, hi, count).Range(lo, hi.Add(time.Millisecond))
	if reversed {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
