package domain_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

func newTestBoard(t *testing.T) *domain.Board {
	t.Helper()
	b := domain.NewBoard(domain.NewClockTime(16, 37))
	for _, fields := range [][]string{
		{"16", "37", "L1", "1", "Oslo S"},
		{"18", "58", "L3", "2", "Lillestrøm"},
	} {
		if _, err := b.AddDeparture(fields); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return b
}

func TestBoard_AddDepartureKeepsOrder(t *testing.T) {
	b := newTestBoard(t)
	i, err := b.AddDeparture([]string{"7", "5", "R11", "4", "Skien"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}

	var got []string
	for _, d := range b.Departures() {
		got = append(got, d.Destination())
	}
	want := []string{"Oslo S", "Lillestrøm", "Skien"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("departure order mismatch (-want +got):\n%s", diff)
	}
}

func TestBoard_AddDepartureParseErrorLeavesBoard(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.AddDeparture([]string{"seven", "5", "R11", "4", "Skien"})
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 departures, got %d", b.Len())
	}
}

func TestBoard_DepartureOutOfRange(t *testing.T) {
	boards := []*domain.Board{domain.NewBoard(domain.ClockTime{}), newTestBoard(t)}
	for _, b := range boards {
		for _, index := range []int{-1, -100, b.Len(), b.Len() + 1} {
			_, err := b.Departure(index)
			if !errors.Is(err, domain.ErrIndexOutOfRange) {
				t.Errorf("Departure(%d) on board of %d: expected ErrIndexOutOfRange, got %v", index, b.Len(), err)
			}
			var ie *domain.IndexError
			if !errors.As(err, &ie) || ie.Index != index || ie.Size != b.Len() {
				t.Errorf("Departure(%d): unexpected error detail %v", index, err)
			}
		}
	}
}

func TestBoard_DepartureIsShared(t *testing.T) {
	b := newTestBoard(t)
	d, err := b.Departure(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.SetTrack(0, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Track() != 7 {
		t.Errorf("expected looked-up departure to see track 7, got %d", d.Track())
	}
}

func TestBoard_SetTrackAndDelay(t *testing.T) {
	b := newTestBoard(t)

	if got, _ := b.SetTrack(1, 0); got != domain.NoTrack {
		t.Errorf("expected no track, got %d", got)
	}
	if _, err := b.SetTrack(5, 1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	delay, err := b.SetDelay(1, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delay != (domain.Delay{Hour: 1, Minute: 10}) {
		t.Errorf("unexpected delay %+v", delay)
	}
	at, err := b.EffectiveTime(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.String() != "20:08" {
		t.Errorf("expected 20:08, got %s", at)
	}
	if _, err := b.EffectiveTime(-1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBoard_AdvanceClock(t *testing.T) {
	b := newTestBoard(t)
	if got := b.AdvanceClock(23, 75); got.String() != "00:15" {
		t.Errorf("expected 00:15, got %s", got)
	}
	if b.Clock().String() != "00:15" {
		t.Errorf("clock not stored, got %s", b.Clock())
	}
}

func TestBoard_FindByIndexToken(t *testing.T) {
	b := newTestBoard(t)

	d, err := b.FindByIndexToken("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Line() != "L3" {
		t.Errorf("expected L3, got %s", d.Line())
	}

	if _, err := b.FindByIndexToken("Oslo S"); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	if _, err := b.FindByIndexToken("2"); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}
