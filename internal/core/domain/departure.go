package domain

import (
	"fmt"
	"strconv"
)

// Raw field positions of a departure record.
const (
	FieldHour = iota
	FieldMinute
	FieldLine
	FieldTrack
	FieldDestination

	fieldCount
)

var fieldNames = [fieldCount]string{"hour", "minute", "line", "track", "destination"}

// Departure is a scheduled train leaving the station.
type Departure struct {
	scheduled   ClockTime
	delay       Delay
	line        string
	destination string
	track       int
}

// NewDeparture creates a departure with no delay. The track is normalised.
func NewDeparture(at ClockTime, line, destination string, track int) *Departure {
	return &Departure{
		scheduled:   at,
		line:        line,
		destination: destination,
		track:       NormalizeTrack(track),
	}
}

// ParseDeparture builds a departure from raw fields ordered
// hour, minute, line, track, destination. Extra fields are ignored.
func ParseDeparture(fields []string) (*Departure, error) {
	if len(fields) < fieldCount {
		return nil, fmt.Errorf("departure record has %d fields, want %d: %w", len(fields), fieldCount, ErrParse)
	}
	hour, err := parseField(fields, FieldHour)
	if err != nil {
		return nil, err
	}
	minute, err := parseField(fields, FieldMinute)
	if err != nil {
		return nil, err
	}
	track, err := parseField(fields, FieldTrack)
	if err != nil {
		return nil, err
	}
	return NewDeparture(
		NewClockTime(hour, minute),
		fields[FieldLine],
		fields[FieldDestination],
		track,
	), nil
}

func parseField(fields []string, i int) (int, error) {
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, &ParseError{Field: fieldNames[i], Value: fields[i]}
	}
	return n, nil
}

func (d *Departure) Scheduled() ClockTime { return d.scheduled }
func (d *Departure) Delay() Delay         { return d.delay }
func (d *Departure) Line() string         { return d.line }
func (d *Departure) Destination() string  { return d.destination }
func (d *Departure) Track() int           { return d.track }

// HasTrack reports whether a track has been assigned.
func (d *Departure) HasTrack() bool { return d.track != NoTrack }

// SetTrack stores t, or NoTrack when t is outside [1, 99].
func (d *Departure) SetTrack(t int) int {
	d.track = NormalizeTrack(t)
	return d.track
}

// SetDelay stores the delay, or zero when it is out of range.
func (d *Departure) SetDelay(h, m int) Delay {
	d.delay = NewDelay(h, m)
	return d.delay
}

// EffectiveTime is the scheduled time plus the delay.
func (d *Departure) EffectiveTime() ClockTime {
	return d.scheduled.Add(d.delay)
}

// String is the short listing form: line, track, scheduled H:M, destination.
func (d *Departure) String() string {
	return fmt.Sprintf("%s %d %d:%d %s", d.line, d.track, d.scheduled.Hour, d.scheduled.Minute, d.destination)
}
