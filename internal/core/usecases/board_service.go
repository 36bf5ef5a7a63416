package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/trainboard/internal/core/display"
	"github.com/samirrijal/trainboard/internal/core/domain"
	"github.com/samirrijal/trainboard/internal/core/ports"
	"github.com/samirrijal/trainboard/internal/pkg/metrics"
	"github.com/samirrijal/trainboard/internal/pkg/telemetry"
)

// SnapshotKey is the cache key holding the mirrored board.
const SnapshotKey = "board:snapshot"

// BoardService exposes the departure board to the menu. Every successful
// mutation is counted, traced, published and mirrored; publisher and cache
// are optional.
type BoardService struct {
	board     *domain.Board
	events    ports.EventPublisher
	cache     ports.CacheService
	mirrorTTL int
	tracer    trace.Tracer
}

// NewBoardService creates a new BoardService. events and cache may be nil.
func NewBoardService(board *domain.Board, events ports.EventPublisher, cache ports.CacheService, mirrorTTL int) *BoardService {
	if mirrorTTL <= 0 {
		mirrorTTL = 300
	}
	s := &BoardService{
		board:     board,
		events:    events,
		cache:     cache,
		mirrorTTL: mirrorTTL,
		tracer:    otel.Tracer("trainboard/usecases"),
	}
	metrics.BoardDepartures.Set(float64(board.Len()))
	metrics.BoardClockMinutes.Set(float64(board.Clock().Minutes()))
	return s
}

// Len returns the number of departures.
func (s *BoardService) Len() int { return s.board.Len() }

// Clock returns the simulated time.
func (s *BoardService) Clock() domain.ClockTime { return s.board.Clock() }

// Departures returns the departures in board order.
func (s *BoardService) Departures() []*domain.Departure { return s.board.Departures() }

// Departure returns the departure at index.
func (s *BoardService) Departure(index int) (*domain.Departure, error) {
	return s.board.Departure(index)
}

// Find resolves an index token typed by the operator.
func (s *BoardService) Find(ctx context.Context, token string) (*domain.Departure, error) {
	_, span := s.tracer.Start(ctx, telemetry.SpanFind)
	defer span.End()

	d, err := s.board.FindByIndexToken(token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	metrics.BoardOperations.WithLabelValues("find").Inc()
	return d, nil
}

// AddDeparture parses raw fields and appends the departure.
func (s *BoardService) AddDeparture(ctx context.Context, fields []string) (int, error) {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanAddDeparture)
	defer span.End()

	index, err := s.board.AddDeparture(fields)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int("board.index", index))
	slog.Info("departure added", "index", index, "fields", fields)
	s.changed(ctx, "add_departure", domain.EventDepartureAdded, index)
	return index, nil
}

// SetTrack assigns a track and returns the normalised value.
func (s *BoardService) SetTrack(ctx context.Context, index, track int) (int, error) {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanSetTrack)
	defer span.End()

	stored, err := s.board.SetTrack(index, track)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int("board.index", index), attribute.Int("board.track", stored))
	if stored != track {
		slog.Warn("track out of range, unassigned", "index", index, "track", track)
	}
	s.changed(ctx, "set_track", domain.EventTrackAssigned, index)
	return stored, nil
}

// SetDelay notifies a delay and returns the normalised value.
func (s *BoardService) SetDelay(ctx context.Context, index, h, m int) (domain.Delay, error) {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanSetDelay)
	defer span.End()

	stored, err := s.board.SetDelay(index, h, m)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Delay{}, err
	}
	if stored != (domain.Delay{Hour: h, Minute: m}) {
		slog.Warn("delay out of range, reset", "index", index, "hour", h, "minute", m)
	}
	s.changed(ctx, "set_delay", domain.EventDelayNotified, index)
	return stored, nil
}

// AdvanceClock sets the simulated time.
func (s *BoardService) AdvanceClock(ctx context.Context, h, m int) domain.ClockTime {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanAdvanceClock)
	defer span.End()

	clock := s.board.AdvanceClock(h, m)
	span.SetAttributes(attribute.String("board.clock", clock.String()))
	metrics.BoardClockMinutes.Set(float64(clock.Minutes()))
	slog.Info("clock advanced", "clock", clock.String())
	s.changed(ctx, "advance_clock", domain.EventClockAdvanced, -1)
	return clock
}

// EffectiveTime returns the delayed departure time at index.
func (s *BoardService) EffectiveTime(index int) (domain.ClockTime, error) {
	return s.board.EffectiveTime(index)
}

// changed fans a mutation out to metrics, the event feed and the mirror.
// index is -1 for board-wide changes.
func (s *BoardService) changed(ctx context.Context, op string, kind domain.EventKind, index int) {
	metrics.BoardOperations.WithLabelValues(op).Inc()
	metrics.BoardDepartures.Set(float64(s.board.Len()))

	if s.events != nil {
		var view *domain.DepartureView
		if d, err := s.board.Departure(index); err == nil {
			v := domain.ViewOf(index, d)
			view = &v
		}
		ev := domain.NewBoardEvent(kind, s.board.Clock(), view)
		if err := s.events.PublishBoardEvent(ctx, &ev); err != nil {
			metrics.EventsPublished.WithLabelValues("error").Inc()
			slog.Warn("publish board event failed", "kind", kind, "error", err)
		} else {
			metrics.EventsPublished.WithLabelValues("ok").Inc()
		}
	}

	s.mirror(ctx)
}

// mirror writes the rendered board to the cache for wall displays.
func (s *BoardService) mirror(ctx context.Context) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(display.Snapshot(s.board.Clock(), s.board.Departures()))
	if err != nil {
		metrics.MirrorWrites.WithLabelValues("error").Inc()
		return
	}
	if err := s.cache.Set(ctx, SnapshotKey, data, s.mirrorTTL); err != nil {
		metrics.MirrorWrites.WithLabelValues("error").Inc()
		slog.Warn("mirror board failed", "error", err)
		return
	}
	metrics.MirrorWrites.WithLabelValues("ok").Inc()
}

// Mirror publishes the current board without a mutation, e.g. at start-up.
func (s *BoardService) Mirror(ctx context.Context) {
	s.mirror(ctx)
}

// IsLookupError reports whether err came from a bad index or number.
func IsLookupError(err error) bool {
	return errors.Is(err, domain.ErrParse) || errors.Is(err, domain.ErrIndexOutOfRange)
}
