package menu

import (
	"context"
	"log/slog"

	"github.com/samirrijal/trainboard/internal/core/display"
	"github.com/samirrijal/trainboard/internal/core/domain"
	"github.com/samirrijal/trainboard/internal/pkg/metrics"
)

func (c *Controller) selectMode(ctx context.Context) (Event, error) {
	c.clearScreen()
	c.println(c.banner())

	in, err := c.prompt(ctx, "Please enter value: ")
	if err != nil {
		return nil, err
	}
	ev := ParseChoice(in)
	switch e := ev.(type) {
	case EventInvalid:
		c.notice = "Invalid input, please try again."
	case EventChoice:
		if !IsChoice(e.N) {
			c.notice = "Invalid input. Try again"
		}
	}
	return ev, nil
}

func (c *Controller) viewDepartures(ctx context.Context) (Event, error) {
	c.clearScreen()
	c.println(display.Title + "\n\nTrain departures\n")
	c.print(display.Table(c.board.Clock(), c.board.Departures()))
	c.println("\n\n")

	if err := c.waitForEnter(ctx); err != nil {
		return nil, err
	}
	return EventDone{}, nil
}

// addPrompts are asked in this order; the answers are stored under the
// matching raw field position.
var addPrompts = []struct {
	field int
	text  string
}{
	{domain.FieldHour, "Hour for planned departure: "},
	{domain.FieldMinute, "Minute for planned departure: "},
	{domain.FieldDestination, "Destination for departure: "},
	{domain.FieldLine, "Line of train departure: "},
	{domain.FieldTrack, "Train-track for departure: "},
}

func (c *Controller) addDeparture(ctx context.Context) (Event, error) {
	c.clearScreen()
	c.println("Add new train departure")

	fields := make([]string, len(addPrompts))
	for _, p := range addPrompts {
		in, err := c.prompt(ctx, p.text)
		if err != nil {
			return nil, err
		}
		if in == "" {
			return EventDone{}, nil
		}
		fields[p.field] = in
	}

	if _, err := c.board.AddDeparture(ctx, fields); err != nil {
		return nil, err
	}
	return EventDone{}, nil
}

func (c *Controller) assignTrack(ctx context.Context) (Event, error) {
	c.listDepartures()

	index, ok, err := c.promptInt(ctx, "Enter index of train to assign track to: ", "index")
	if err != nil || !ok {
		return EventDone{}, err
	}
	if _, err := c.board.Departure(index); err != nil {
		return nil, err
	}

	track, ok, err := c.promptInt(ctx, "Enter track number: ", "track")
	if err != nil || !ok {
		return EventDone{}, err
	}
	stored, err := c.board.SetTrack(ctx, index, track)
	if err != nil {
		return nil, err
	}
	if stored == domain.NoTrack {
		c.println("Invalid input. Must be between 1 and 99")
		if err := c.waitForEnter(ctx); err != nil {
			return nil, err
		}
	}
	return EventDone{}, nil
}

func (c *Controller) notifyDelay(ctx context.Context) (Event, error) {
	c.listDepartures()

	index, ok, err := c.promptInt(ctx, "Enter index of train to notify delay of: ", "index")
	if err != nil || !ok {
		return EventDone{}, err
	}
	if _, err := c.board.Departure(index); err != nil {
		return nil, err
	}

	hour, ok, err := c.promptInt(ctx, "Enter hour of delay: ", "delay hour")
	if err != nil || !ok {
		return EventDone{}, err
	}
	minute, ok, err := c.promptInt(ctx, "Enter minute of delay: ", "delay minute")
	if err != nil || !ok {
		return EventDone{}, err
	}

	if _, err := c.board.SetDelay(ctx, index, hour, minute); err != nil {
		return nil, err
	}
	return EventDone{}, c.waitForEnter(ctx)
}

// search selects a departure by index. Both search modes look up by index;
// an unusable token leaves the selection alone.
func (c *Controller) search(ctx context.Context, msg string) (Event, error) {
	c.listDepartures()

	in, err := c.prompt(ctx, msg)
	if err != nil {
		return nil, err
	}
	if in == "" {
		return EventDone{}, nil
	}

	d, err := c.board.Find(ctx, in)
	if err != nil {
		metrics.RecordError(err)
		slog.Debug("search found nothing", "token", in, "error", err)
		return EventDone{}, nil
	}
	c.selected = d
	return EventDone{}, nil
}

func (c *Controller) updateTime(ctx context.Context) (Event, error) {
	c.clearScreen()
	c.println("Update time")

	hourIn, err := c.prompt(ctx, "Enter new hour: ")
	if err != nil || hourIn == "" {
		return EventDone{}, err
	}
	minuteIn, err := c.prompt(ctx, "Enter new minute: ")
	if err != nil || minuteIn == "" {
		return EventDone{}, err
	}

	hour, err := atoi("hour", hourIn)
	if err != nil {
		return nil, err
	}
	minute, err := atoi("minute", minuteIn)
	if err != nil {
		return nil, err
	}
	c.board.AdvanceClock(ctx, hour, minute)
	return EventDone{}, nil
}

func (c *Controller) quit(context.Context) (Event, error) {
	c.println("Exiting application")
	return EventDone{}, nil
}
