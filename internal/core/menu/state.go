package menu

import (
	"fmt"
	"strconv"
)

// State is a mode of the menu. The numeric values are the choices typed
// in select mode.
type State int

const (
	SelectMode          State = 0
	ViewDepartures      State = 1
	AddDeparture        State = 2
	AssignTrack         State = 3
	NotifyDelay         State = 4
	SearchByNumber      State = 5
	SearchByDestination State = 6
	UpdateTime          State = 7
	Quit                State = 10
)

var stateNames = map[State]string{
	SelectMode:          "select_mode",
	ViewDepartures:      "view_departures",
	AddDeparture:        "add_departure",
	AssignTrack:         "assign_track",
	NotifyDelay:         "notify_delay",
	SearchByNumber:      "search_by_number",
	SearchByDestination: "search_by_destination",
	UpdateTime:          "update_time",
	Quit:                "quit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is the outcome of running a state's handler.
type Event interface {
	isEvent()
}

// EventChoice is a numeric menu choice read in select mode.
type EventChoice struct{ N int }

// EventInvalid is a select-mode answer that was not a number.
type EventInvalid struct{ Input string }

// EventDone ends a non-initial state.
type EventDone struct{}

func (EventChoice) isEvent()  {}
func (EventInvalid) isEvent() {}
func (EventDone) isEvent()    {}

// IsChoice reports whether n selects a mode from the menu.
func IsChoice(n int) bool {
	return (n >= int(ViewDepartures) && n <= int(UpdateTime)) || n == int(Quit)
}

// ParseChoice parses a select-mode answer.
func ParseChoice(in string) Event {
	n, err := strconv.Atoi(in)
	if err != nil {
		return EventInvalid{Input: in}
	}
	return EventChoice{N: n}
}

// Transition returns the state that follows from after ev.
//
// Select mode moves to the chosen mode for a valid choice and stays put
// otherwise. Every other mode returns to select mode, except Quit which
// never leaves.
func Transition(from State, ev Event) State {
	switch from {
	case Quit:
		return Quit
	case SelectMode:
		if c, ok := ev.(EventChoice); ok && IsChoice(c.N) {
			return State(c.N)
		}
		return SelectMode
	default:
		return SelectMode
	}
}
