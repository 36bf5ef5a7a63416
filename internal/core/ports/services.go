package ports

import (
	"context"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

// EventPublisher publishes board events to a message broker.
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event *domain.BoardEvent) error
}

// CacheService stores values with expiry. The board only ever writes to it.
type CacheService interface {
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}
