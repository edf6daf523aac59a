package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/drinks-service/internal/cache"
	"github.com/spec-kit/drinks-service/internal/events"
)

// StartMenuWorker subscribes the handlers that react to catalog mutations:
// dropping the cached menu listings and writing an audit line.
func StartMenuWorker(dispatcher events.Dispatcher, menuCache cache.MenuCache, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	invalidate := func(ctx context.Context, event events.Event) error {
		if menuCache == nil {
			return nil
		}
		return menuCache.Invalidate(ctx)
	}
	audit := func(ctx context.Context, event events.Event) error {
		logger.Info("drink catalog changed",
			zap.String("event", string(event.Type)),
			zap.Int64("drink_id", event.DrinkID),
			zap.String("actor", event.Actor))
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventDrinkCreated,
		events.EventDrinkUpdated,
		events.EventDrinkDeleted,
	} {
		dispatcher.Subscribe(eventType, invalidate)
		dispatcher.Subscribe(eventType, audit)
	}
}
