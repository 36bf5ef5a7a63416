package domain

import "fmt"

const (
	minutesPerHour = 60
	hoursPerDay    = 24
)

// NoTrack is the track value of a departure without an assigned track.
const NoTrack = -1

// ClockTime is an hour/minute pair on a 24 hour dial with no date attached.
// Use NewClockTime to build one; the zero value is midnight.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewClockTime normalises h and m: minutes carry into the hour and the hour
// wraps modulo 24. Negative inputs wrap backwards around the dial.
func NewClockTime(h, m int) ClockTime {
	h += floorDiv(m, minutesPerHour)
	m = floorMod(m, minutesPerHour)
	return ClockTime{Hour: floorMod(h, hoursPerDay), Minute: m}
}

// Add returns the clock time shifted forward by d.
func (t ClockTime) Add(d Delay) ClockTime {
	return NewClockTime(t.Hour+d.Hour, t.Minute+d.Minute)
}

// Minutes returns the number of minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*minutesPerHour + t.Minute
}

// String formats the time as HH:MM.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Delay is an additive offset applied to a scheduled departure time.
type Delay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewDelay keeps (h, m) only when 0 <= h < 24 and 0 <= m < 60; anything else
// resets the delay to zero.
func NewDelay(h, m int) Delay {
	if h < 0 || h >= hoursPerDay || m < 0 || m >= minutesPerHour {
		return Delay{}
	}
	return Delay{Hour: h, Minute: m}
}

// IsZero reports whether the delay is (0, 0).
func (d Delay) IsZero() bool {
	return d.Hour == 0 && d.Minute == 0
}

// NormalizeTrack returns t for t in [1, 99] and NoTrack otherwise.
func NormalizeTrack(t int) int {
	if t < 1 || t > 99 {
		return NoTrack
	}
	return t
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
