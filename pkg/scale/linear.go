package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps a numeric domain onto a numeric range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a scale with domain [0, 1] and the given range.
func NewLinear(r0, r1 float64) *Linear {
	return &Linear{d0: 0, d1: 1, r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (s *Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// SetDomain replaces the domain.
func (s *Linear) SetDomain(d0, d1 float64) *Linear {
	s.d0, s.d1 = d0, d1
	return s
}

// Range returns the range bounds.
func (s *Linear) Range() (float64, float64) { return s.r0, s.r1 }

// SetRange replaces the range.
func (s *Linear) SetRange(r0, r1 float64) *Linear {
	s.r0, s.r1 = r0, r1
	return s
}

// Map returns the range value for v.
func (s *Linear) Map(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	t := (v - s.d0) / span
	return s.r0 + t*(s.r1-s.r0)
}

// Invert returns the domain value for a range value.
func (s *Linear) Invert(y float64) float64 {
	span := s.r1 - s.r0
	if span == 0 {
		return (s.d0 + s.d1) / 2
	}
	return s.d0 + (y-s.r0)/span*(s.d1-s.d0)
}

// Nice extends the domain to round values suitable for about count ticks.
func (s *Linear) Nice(count int) *Linear {
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	if start == stop || math.IsNaN(start) || math.IsNaN(stop) {
		return s
	}

	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, float64(count))
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			i = 10
		}
		prestep = step
	}

	if reversed {
		s.d0, s.d1 = stop, start
	} else {
		s.d0, s.d1 = start, stop
	}
	return s
}

// Ticks returns about count round values inside the domain.
func (s *Linear) Ticks(count int) []float64 {
	return ticks(s.d0, s.d1, float64(count))
}

// TickFormat returns a formatter with enough decimals for the tick step and
// grouped thousands, e.g. "1,250" or "0.25".
func (s *Linear) TickFormat(count int) func(float64) string {
	step := math.Abs(tickStep(s.d0, s.d1, float64(count)))
	precision := 0
	if step > 0 && !math.IsInf(step, 0) {
		precision = max(0, -exponent(step))
	}
	format := "#,###."
	for i := 0; i < precision; i++ {
		format += "#"
	}
	return func(v float64) string {
		if precision == 0 {
			v = math.Round(v)
		}
		if v == 0 {
			v = 0 // drop the sign of negative zero
		}
		return humanize.FormatFloat(format, v)
	}
}

// =============================================================================
// Tick arithmetic
// =============================================================================

type tickSpecResult struct {
	i1, i2 float64
	inc    float64
}

func tickSpec(start, stop, count float64) tickSpecResult {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errv := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errv >= e10:
		factor = 10
	case errv >= e5:
		factor = 5
	case errv >= e2:
		factor = 2
	}

	var i1, i2, inc float64
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return tickSpecResult{i1: i1, i2: i2, inc: inc}
}

func tickIncrement(start, stop, count float64) float64 {
	return tickSpec(start, stop, count).inc
}

// tickStep returns the signed distance between adjacent ticks.
func tickStep(start, stop, count float64) float64 {
	if start == stop {
		return 0
	}
	reverse := stop < start
	var inc float64
	if reverse {
		inc = tickIncrement(stop, start, count)
	} else {
		inc = tickIncrement(start, stop, count)
	}
	sign := 1.0
	if reverse {
		sign = -1
	}
	if inc < 0 {
		return sign / -inc
	}
	return sign * inc
}

func ticks(start, stop, count float64) []float64 {
	if !(count > 0) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	spec := tickSpec(start, stop, count)
	if !(spec.i2 >= spec.i1) {
		return nil
	}
	n := int(spec.i2-spec.i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var k float64
		if reverse {
			k = spec.i2 - float64(i)
		} else {
			k = spec.i1 + float64(i)
		}
		if spec.inc < 0 {
			out[i] = k / -spec.inc
		} else {
			out[i] = k * spec.inc
		}
	}
	return out
}

// exponent returns the decimal exponent of x, read from its shortest
// scientific representation so that 0.1 yields -1 exactly.
func exponent(x float64) int {
	s := strconv.FormatFloat(x, 'e', -1, 64)
	e, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	return e
}
