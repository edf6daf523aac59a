package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventDrinkCreated, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventDrinkCreated, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventDrinkDeleted, func(_ context.Context, e Event) error {
		seen = append(seen, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDrinkCreated, DrinkID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:drink_created", "second:drink_created"}, seen)
}

func TestDispatcher_AllHandlersRunDespiteFailures(t *testing.T) {
	d := NewInMemoryDispatcher()

	boom := errors.New("boom")
	var ran int
	d.Subscribe(EventDrinkUpdated, func(context.Context, Event) error {
		ran++
		return boom
	})
	d.Subscribe(EventDrinkUpdated, func(context.Context, Event) error {
		ran++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDrinkUpdated})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ran)
}

func TestDispatcher_NoSubscribersIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventDrinkDeleted}))
}
