// Package display renders the departure board as fixed-width ASCII text.
package display

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

// DestinationWidth is the column width reserved for destinations.
const DestinationWidth = 17

const (
	ClearScreen = "\033[H\033[2J"
	Title       = "Train Dispatch System 1.0"
)

// PadRight appends spaces to s until it fills width terminal cells. Longer
// strings are returned unchanged.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Row formats one board line: effective time, line, padded destination, track.
func Row(d *domain.Departure) string {
	return fmt.Sprintf("%s %s %s %d",
		d.EffectiveTime(), d.Line(), PadRight(d.Destination(), DestinationWidth), d.Track())
}

// Header is the column heading followed by the board clock.
func Header(clock domain.ClockTime) string {
	return "AVGANGER Departures      SPOR Track      " + clock.String()
}

// Table renders the header and one row per departure, in board order.
func Table(clock domain.ClockTime, deps []*domain.Departure) string {
	var b strings.Builder
	b.WriteString(Header(clock))
	b.WriteString("\n")
	for _, d := range deps {
		b.WriteString(Row(d))
		b.WriteString("\n")
	}
	return b.String()
}

// Numbered lists departures prefixed by their board index.
func Numbered(deps []*domain.Departure) string {
	var b strings.Builder
	for i, d := range deps {
		fmt.Fprintf(&b, "%d : %s\n", i, d)
	}
	return b.String()
}

// Snapshot captures the board for display mirrors.
func Snapshot(clock domain.ClockTime, deps []*domain.Departure) domain.Snapshot {
	views := make([]domain.DepartureView, 0, len(deps))
	for i, d := range deps {
		views = append(views, domain.ViewOf(i, d))
	}
	return domain.Snapshot{
		Clock:      clock,
		Departures: views,
		Rendered:   Table(clock, deps),
	}
}
