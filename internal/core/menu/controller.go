package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/trainboard/internal/core/display"
	"github.com/samirrijal/trainboard/internal/core/domain"
	"github.com/samirrijal/trainboard/internal/core/ports"
	"github.com/samirrijal/trainboard/internal/core/usecases"
	"github.com/samirrijal/trainboard/internal/pkg/metrics"
	"github.com/samirrijal/trainboard/internal/pkg/telemetry"
)

const menuText = `Train Dispatch System 1.0

Choices:
1: View train departures
2: Add new train departure
3: Assign track to departure
4: Notify delay of departure
5: Search for train based on train-number
6: Search for train based on destination

7: Update time
10: Quit application
`

// Controller drives the menu state machine over a console.
type Controller struct {
	console ports.Console
	board   *usecases.BoardService
	tracer  trace.Tracer

	state State
	// selected is set by the search modes and shown in the menu banner.
	selected *domain.Departure
	// notice is printed once under the next menu.
	notice string
}

// NewController creates a controller starting in select mode.
func NewController(console ports.Console, board *usecases.BoardService) *Controller {
	return &Controller{
		console: console,
		board:   board,
		tracer:  otel.Tracer("trainboard/menu"),
		state:   SelectMode,
	}
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Selected returns the departure picked by the last successful search, or nil.
func (c *Controller) Selected() *domain.Departure { return c.selected }

// ClearSelection forgets the selected departure.
func (c *Controller) ClearSelection() { c.selected = nil }

// Run executes handlers until the operator quits. It returns nil after
// Quit, and an error when the input closes or the context ends.
//
// Bad numbers and unknown indices abort the current handler only: the
// error is shown under the menu and the machine returns to select mode.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		metrics.MenuTransitions.WithLabelValues(c.state.String()).Inc()

		ev, err := c.Step(ctx)
		if c.state == Quit {
			return nil
		}
		if err != nil {
			if !usecases.IsLookupError(err) {
				return err
			}
			metrics.RecordError(err)
			slog.Warn("handler aborted", "state", c.state.String(), "error", err)
			c.notice = "Error: " + err.Error()
			ev = EventDone{}
		}
		c.state = Transition(c.state, ev)
	}
}

// Step runs the handler of the current state once and returns its event.
// It does not change state.
func (c *Controller) Step(ctx context.Context) (Event, error) {
	ctx, span := c.tracer.Start(ctx, telemetry.SpanHandleState)
	defer span.End()
	span.SetAttributes(attribute.String("menu.state", c.state.String()))

	switch c.state {
	case SelectMode:
		return c.selectMode(ctx)
	case ViewDepartures:
		return c.viewDepartures(ctx)
	case AddDeparture:
		return c.addDeparture(ctx)
	case AssignTrack:
		return c.assignTrack(ctx)
	case NotifyDelay:
		return c.notifyDelay(ctx)
	case SearchByNumber:
		return c.search(ctx, "Enter train number: ")
	case SearchByDestination:
		return c.search(ctx, "Enter destination: ")
	case UpdateTime:
		return c.updateTime(ctx)
	case Quit:
		return c.quit(ctx)
	default:
		return nil, fmt.Errorf("unknown menu state %d", int(c.state))
	}
}

// print writes to the console. Output failures are logged, not retried.
func (c *Controller) print(s string) {
	if err := c.console.Write(s); err != nil {
		metrics.RecordError(err)
		slog.Warn("console write failed", "error", err)
	}
}

func (c *Controller) println(s string) {
	c.print(s + "\n")
}

// readLine reads one line, retrying transient failures. An empty line is
// returned as-is.
func (c *Controller) readLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := c.console.ReadLine()
		if err == nil {
			return line, nil
		}
		if !errors.Is(err, domain.ErrTransientIO) {
			return "", err
		}
		metrics.ConsoleRetries.Inc()
		slog.Debug("console read retried", "error", err)
		c.println("Error " + err.Error() + "\n")
	}
}

// prompt prints msg and reads the answer. An empty answer means cancel.
func (c *Controller) prompt(ctx context.Context, msg string) (string, error) {
	c.println(msg)
	return c.readLine(ctx)
}

// promptInt prompts for an integer. ok is false when the operator cancels
// with an empty line.
func (c *Controller) promptInt(ctx context.Context, msg, field string) (n int, ok bool, err error) {
	in, err := c.prompt(ctx, msg)
	if err != nil || in == "" {
		return 0, false, err
	}
	n, err = atoi(field, in)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func atoi(field, in string) (int, error) {
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, &domain.ParseError{Field: field, Value: in}
	}
	return n, nil
}

// waitForEnter blocks until the operator presses enter.
func (c *Controller) waitForEnter(ctx context.Context) error {
	c.println("Enter to exit to menu")
	_, err := c.readLine(ctx)
	return err
}

func (c *Controller) clearScreen() {
	c.print(display.ClearScreen)
}

// listDepartures prints the numbered departures used by the index prompts.
func (c *Controller) listDepartures() {
	c.clearScreen()
	c.print(display.Numbered(c.board.Departures()))
}

func (c *Controller) banner() string {
	var b strings.Builder
	b.WriteString(menuText)
	if c.selected != nil {
		b.WriteString("\nSelected departure: " + c.selected.String() + "\n")
	}
	if c.notice != "" {
		b.WriteString("\n" + c.notice + "\n")
		c.notice = ""
	}
	return b.String()
}
