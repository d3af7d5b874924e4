package messaging

import (
	"context"

	"github.com/greenhollow/gh-game-core/internal/domain"
)

// Publisher defines the interface for publishing economy events to the
// message broker. Events are advisory notifications for downstream
// consumers; a publish failure never aborts the action that produced them.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEconomyEvent publishes an economy event to the message broker
	PublishEconomyEvent(ctx context.Context, event *domain.EconomyEvent) error
	// Close closes the connection
	Close()
}
