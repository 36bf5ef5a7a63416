package menu_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samirrijal/trainboard/internal/core/domain"
	"github.com/samirrijal/trainboard/internal/core/menu"
	"github.com/samirrijal/trainboard/internal/core/usecases"
)

// --- Scripted console ---

type scriptConsole struct {
	lines []string
	// errs maps a read number (0-based) to an error returned instead of a line.
	errs  map[int]error
	reads int
	out   strings.Builder
}

func (c *scriptConsole) ReadLine() (string, error) {
	n := c.reads
	c.reads++
	if err, ok := c.errs[n]; ok {
		return "", err
	}
	if len(c.lines) == 0 {
		return "", domain.ErrInputClosed
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

func (c *scriptConsole) Write(s string) error {
	c.out.WriteString(s)
	return nil
}

func newController(lines ...string) (*menu.Controller, *usecases.BoardService, *scriptConsole) {
	b := domain.NewBoard(domain.NewClockTime(16, 37))
	b.Append(domain.NewDeparture(domain.NewClockTime(16, 37), "L1", "Oslo S", 1))
	b.Append(domain.NewDeparture(domain.NewClockTime(18, 58), "L3", "Lillestrøm", 2))
	svc := usecases.NewBoardService(b, nil, nil, 0)
	con := &scriptConsole{lines: lines}
	return menu.NewController(con, svc), svc, con
}

func runController(t *testing.T, ctl *menu.Controller) {
	t.Helper()
	if err := ctl.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctl.State() != menu.Quit {
		t.Fatalf("expected quit state, got %s", ctl.State())
	}
}

func TestRun_Quit(t *testing.T) {
	ctl, _, con := newController("10")
	runController(t, ctl)

	out := con.out.String()
	if !strings.Contains(out, "Train Dispatch System 1.0") {
		t.Errorf("menu not shown")
	}
	if !strings.Contains(out, "\033[H\033[2J") {
		t.Errorf("screen not cleared")
	}
	if !strings.HasSuffix(out, "Exiting application\n") {
		t.Errorf("expected farewell at the end, got %q", out[len(out)-40:])
	}
}

func TestRun_InvalidChoicesStayInSelectMode(t *testing.T) {
	ctl, _, con := newController("8", "9", "-1", "abc", "10")
	runController(t, ctl)

	out := con.out.String()
	if n := strings.Count(out, "Please enter value: "); n != 5 {
		t.Errorf("expected 5 menu prompts, got %d", n)
	}
	if !strings.Contains(out, "Invalid input. Try again") {
		t.Errorf("missing out-of-range notice")
	}
	if !strings.Contains(out, "Invalid input, please try again.") {
		t.Errorf("missing parse notice")
	}
}

func TestStep_SelectModeDoesNotChangeState(t *testing.T) {
	ctl, _, _ := newController("3")
	ev, err := ctl.Step(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, ok := ev.(menu.EventChoice); !ok || c.N != 3 {
		t.Errorf("expected choice 3, got %#v", ev)
	}
	if ctl.State() != menu.SelectMode {
		t.Errorf("Step must not transition, got %s", ctl.State())
	}
}

func TestRun_ViewDepartures(t *testing.T) {
	ctl, svc, con := newController("1", "", "10")
	svc.AdvanceClock(context.Background(), 9, 5)
	runController(t, ctl)

	out := con.out.String()
	for _, want := range []string{
		"AVGANGER Departures      SPOR Track      09:05",
		"16:37 L1 Oslo S            1\n",
		"18:58 L3 Lillestrøm        2\n",
		"Enter to exit to menu",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRun_AddDeparture(t *testing.T) {
	// hour, minute, destination, line, track
	ctl, svc, _ := newController("2", "7", "5", "Skien", "R11", "4", "10")
	runController(t, ctl)

	if svc.Len() != 3 {
		t.Fatalf("expected 3 departures, got %d", svc.Len())
	}
	d, _ := svc.Departure(2)
	if d.Scheduled().String() != "07:05" || d.Line() != "R11" || d.Destination() != "Skien" || d.Track() != 4 {
		t.Errorf("unexpected departure %s", d)
	}
}

func TestRun_AddDepartureCancelled(t *testing.T) {
	for i := 1; i <= 5; i++ {
		answers := []string{"7", "5", "Skien", "R11", "4"}[:i]
		answers[i-1] = ""
		lines := append(append([]string{"2"}, answers...), "10")

		ctl, svc, _ := newController(lines...)
		runController(t, ctl)
		if svc.Len() != 2 {
			t.Errorf("cancel at prompt %d: expected board unchanged, got %d", i, svc.Len())
		}
	}
}

func TestRun_AddDepartureParseErrorReturnsToMenu(t *testing.T) {
	ctl, svc, con := newController("2", "seven", "5", "Skien", "R11", "4", "10")
	runController(t, ctl)

	if svc.Len() != 2 {
		t.Errorf("expected board unchanged, got %d", svc.Len())
	}
	if !strings.Contains(con.out.String(), `Error: hour "seven"`) {
		t.Errorf("expected parse error under the menu")
	}
}

func TestRun_AssignTrack(t *testing.T) {
	ctl, svc, con := newController("3", "1", "12", "10")
	runController(t, ctl)

	d, _ := svc.Departure(1)
	if d.Track() != 12 {
		t.Errorf("expected track 12, got %d", d.Track())
	}
	if strings.Contains(con.out.String(), "Must be between 1 and 99") {
		t.Errorf("unexpected warning")
	}
	if !strings.Contains(con.out.String(), "1 : L3 2 18:58 Lillestrøm") {
		t.Errorf("numbered list not shown")
	}
}

func TestRun_AssignTrackOutOfRange(t *testing.T) {
	ctl, svc, con := newController("3", "0", "150", "", "10")
	runController(t, ctl)

	d, _ := svc.Departure(0)
	if d.Track() != domain.NoTrack {
		t.Errorf("expected no track, got %d", d.Track())
	}
	if !strings.Contains(con.out.String(), "Invalid input. Must be between 1 and 99") {
		t.Errorf("missing warning")
	}
}

func TestRun_AssignTrackUnknownIndex(t *testing.T) {
	ctl, _, con := newController("3", "9", "10")
	runController(t, ctl)

	out := con.out.String()
	if !strings.Contains(out, "Error: departure 9: index out of range") {
		t.Errorf("expected index error under the menu")
	}
	if strings.Contains(out, "Enter track number") {
		t.Errorf("track must not be asked for an unknown departure")
	}
}

func TestRun_NotifyDelay(t *testing.T) {
	ctl, svc, con := newController("4", "1", "0", "5", "", "10")
	runController(t, ctl)

	at, _ := svc.EffectiveTime(1)
	if at.String() != "19:03" {
		t.Errorf("expected 19:03, got %s", at)
	}
	if !strings.Contains(con.out.String(), "Enter minute of delay: \nEnter to exit to menu\n") {
		t.Errorf("expected enter prompt after the delay is stored")
	}
}

func TestRun_NotifyDelayOutOfRangeResets(t *testing.T) {
	ctl, svc, _ := newController("4", "0", "1", "0", "", "4", "0", "0", "75", "", "10")
	runController(t, ctl)

	d, _ := svc.Departure(0)
	if !d.Delay().IsZero() {
		t.Errorf("expected delay reset, got %+v", d.Delay())
	}
}

func TestRun_SearchSelectsDeparture(t *testing.T) {
	ctl, svc, con := newController("5", "1", "10")
	runController(t, ctl)

	want, _ := svc.Departure(1)
	if ctl.Selected() != want {
		t.Fatalf("expected departure 1 selected, got %v", ctl.Selected())
	}
	if !strings.Contains(con.out.String(), "Selected departure: L3 2 18:58 Lillestrøm") {
		t.Errorf("selection not shown in banner")
	}
}

func TestRun_SearchSelectionIsByReference(t *testing.T) {
	ctl, _, con := newController("6", "0", "3", "0", "33", "10")
	runController(t, ctl)

	if ctl.Selected() == nil || ctl.Selected().Track() != 33 {
		t.Fatalf("selected departure should see the new track, got %v", ctl.Selected())
	}
	if !strings.Contains(con.out.String(), "Selected departure: L1 33 16:37 Oslo S") {
		t.Errorf("banner should show the updated departure")
	}
}

func TestRun_SearchMissKeepsSelection(t *testing.T) {
	ctl, svc, con := newController("5", "1", "6", "7", "5", "Oslo S", "6", "", "5", "-1", "10")
	runController(t, ctl)

	want, _ := svc.Departure(1)
	if ctl.Selected() != want {
		t.Errorf("expected selection unchanged")
	}
	if strings.Contains(con.out.String(), "Error:") {
		t.Errorf("search misses must be silent")
	}

	ctl.ClearSelection()
	if ctl.Selected() != nil {
		t.Errorf("expected selection cleared")
	}
}

func TestRun_UpdateTime(t *testing.T) {
	ctl, svc, _ := newController("7", "23", "75", "10")
	runController(t, ctl)

	if svc.Clock().String() != "00:15" {
		t.Errorf("expected 00:15, got %s", svc.Clock())
	}
}

func TestRun_UpdateTimeCancelled(t *testing.T) {
	for _, lines := range [][]string{
		{"7", "", "10"},
		{"7", "20", "", "10"},
	} {
		ctl, svc, _ := newController(lines...)
		runController(t, ctl)
		if svc.Clock().String() != "16:37" {
			t.Errorf("%v: expected clock unchanged, got %s", lines, svc.Clock())
		}
	}
}

func TestRun_UpdateTimeParseError(t *testing.T) {
	ctl, svc, con := newController("7", "20", "half", "10")
	runController(t, ctl)

	if svc.Clock().String() != "16:37" {
		t.Errorf("expected clock unchanged, got %s", svc.Clock())
	}
	if !strings.Contains(con.out.String(), `Error: minute "half"`) {
		t.Errorf("expected parse error under the menu")
	}
}

func TestRun_RetriesTransientReadErrors(t *testing.T) {
	ctl, _, con := newController("10")
	con.errs = map[int]error{
		0: fmt.Errorf("flaky terminal: %w", domain.ErrTransientIO),
		1: fmt.Errorf("flaky terminal: %w", domain.ErrTransientIO),
	}
	runController(t, ctl)

	if n := strings.Count(con.out.String(), "Error flaky terminal"); n != 2 {
		t.Errorf("expected 2 retry messages, got %d", n)
	}
}

func TestRun_RetriesTransientPromptErrors(t *testing.T) {
	// select, hour, (flaky) minute, minute, destination, line, track
	ctl, svc, con := newController("2", "7", "5", "Skien", "R11", "4", "10")
	con.errs = map[int]error{
		2: fmt.Errorf("flaky terminal: %w", domain.ErrTransientIO),
	}
	runController(t, ctl)

	if n := strings.Count(con.out.String(), "Error flaky terminal"); n != 1 {
		t.Errorf("expected 1 retry message, got %d", n)
	}
	if svc.Len() != 3 {
		t.Fatalf("expected departure added after retry, got %d departures", svc.Len())
	}
	d, _ := svc.Departure(2)
	if d.Scheduled().String() != "07:05" || d.Destination() != "Skien" {
		t.Errorf("unexpected departure %s", d)
	}
}

func TestRun_InputClosed(t *testing.T) {
	ctl, _, _ := newController("1")
	err := ctl.Run(context.Background())
	if !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctl, _, _ := newController("10")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ctl.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
