package telemetry

// Span names used for instrumentation.
const (
	// Board mutations
	SpanAddDeparture = "board.add_departure"
	SpanSetTrack     = "board.set_track"
	SpanSetDelay     = "board.set_delay"
	SpanAdvanceClock = "board.advance_clock"

	// Lookups
	SpanFind = "board.find"

	// Menu
	SpanHandleState = "menu.handle"
)
