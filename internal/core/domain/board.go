package domain

import "strconv"

// Board is the ordered set of departures together with the simulated clock.
// A departure's index is its position in insertion order and never changes.
type Board struct {
	departures []*Departure
	clock      ClockTime
}

// NewBoard creates an empty board showing the given time.
func NewBoard(clock ClockTime) *Board {
	return &Board{clock: clock}
}

// Len returns the number of departures.
func (b *Board) Len() int { return len(b.departures) }

// Clock returns the current simulated time.
func (b *Board) Clock() ClockTime { return b.clock }

// Departures returns the departures in board order. The slice is a copy but
// the departures are shared.
func (b *Board) Departures() []*Departure {
	out := make([]*Departure, len(b.departures))
	copy(out, b.departures)
	return out
}

// Append adds d to the end of the board and returns its index.
func (b *Board) Append(d *Departure) int {
	b.departures = append(b.departures, d)
	return len(b.departures) - 1
}

// AddDeparture parses fields (see ParseDeparture) and appends the result.
func (b *Board) AddDeparture(fields []string) (int, error) {
	d, err := ParseDeparture(fields)
	if err != nil {
		return 0, err
	}
	return b.Append(d), nil
}

// Departure returns the departure at index.
func (b *Board) Departure(index int) (*Departure, error) {
	if index < 0 || index >= len(b.departures) {
		return nil, &IndexError{Index: index, Size: len(b.departures)}
	}
	return b.departures[index], nil
}

// SetTrack assigns a track to the departure at index and returns the stored value.
func (b *Board) SetTrack(index, track int) (int, error) {
	d, err := b.Departure(index)
	if err != nil {
		return 0, err
	}
	return d.SetTrack(track), nil
}

// SetDelay sets the delay of the departure at index and returns the stored value.
func (b *Board) SetDelay(index, h, m int) (Delay, error) {
	d, err := b.Departure(index)
	if err != nil {
		return Delay{}, err
	}
	return d.SetDelay(h, m), nil
}

// AdvanceClock sets the clock to the normalised (h, m).
func (b *Board) AdvanceClock(h, m int) ClockTime {
	b.clock = NewClockTime(h, m)
	return b.clock
}

// EffectiveTime returns the delayed departure time at index.
func (b *Board) EffectiveTime(index int) (ClockTime, error) {
	d, err := b.Departure(index)
	if err != nil {
		return ClockTime{}, err
	}
	return d.EffectiveTime(), nil
}

// FindByIndexToken resolves an operator-entered index token.
func (b *Board) FindByIndexToken(token string) (*Departure, error) {
	i, err := strconv.Atoi(token)
	if err != nil {
		return nil, &ParseError{Field: "index", Value: token}
	}
	return b.Departure(i)
}
