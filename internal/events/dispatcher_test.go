package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventShopRegistered, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ShopID)
		return errors.New("first failed")
	})
	d.Subscribe(EventShopRegistered, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ShopID)
		return nil
	})
	d.Subscribe(EventShopDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventShopRegistered, ShopID: "s1"})
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first:s1", "second:s1"}, got)
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventShopUpdated}))
}
