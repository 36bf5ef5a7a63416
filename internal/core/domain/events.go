package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names a board mutation.
type EventKind string

const (
	EventDepartureAdded EventKind = "departure_added"
	EventTrackAssigned  EventKind = "track_assigned"
	EventDelayNotified  EventKind = "delay_notified"
	EventClockAdvanced  EventKind = "clock_advanced"
)

// DepartureView is the serialisable shape of a departure.
type DepartureView struct {
	Index         int       `json:"index"`
	Line          string    `json:"line"`
	Destination   string    `json:"destination"`
	Track         int       `json:"track"`
	Scheduled     ClockTime `json:"scheduled"`
	Delay         Delay     `json:"delay"`
	EffectiveTime ClockTime `json:"effective_time"`
}

// ViewOf captures the current state of d.
func ViewOf(index int, d *Departure) DepartureView {
	return DepartureView{
		Index:         index,
		Line:          d.Line(),
		Destination:   d.Destination(),
		Track:         d.Track(),
		Scheduled:     d.Scheduled(),
		Delay:         d.Delay(),
		EffectiveTime: d.EffectiveTime(),
	}
}

// BoardEvent records one mutation of the board.
type BoardEvent struct {
	ID         string         `json:"id"`
	Kind       EventKind      `json:"kind"`
	Clock      ClockTime      `json:"clock"`
	Departure  *DepartureView `json:"departure,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewBoardEvent stamps a new event with a random ID.
func NewBoardEvent(kind EventKind, clock ClockTime, dep *DepartureView) BoardEvent {
	return BoardEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Clock:      clock,
		Departure:  dep,
		OccurredAt: time.Now().UTC(),
	}
}

// Snapshot is the whole board as published to display mirrors.
type Snapshot struct {
	Clock      ClockTime       `json:"clock"`
	Departures []DepartureView `json:"departures"`
	Rendered   string          `json:"rendered"`
}
