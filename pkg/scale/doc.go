// Package scale provides the continuous scales used by the timeline chart.
//
// [Linear] maps numbers and [Time] maps instants onto a pixel range. Both
// support nice-rounding of their domain and tick generation compatible with
// the conventions of d3-scale: linear ticks step by 1, 2 or 5 times a power
// of ten, time ticks step by calendar intervals (seconds through years).
//
// Nice-rounding only ever widens a domain. A degenerate domain (both ends
// equal) maps every input to the middle of the range.
//
// Time arithmetic is done in UTC.
package scale
