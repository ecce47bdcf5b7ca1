package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisNotifierPublishes(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	subscriber := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer subscriber.Close()
	sub := subscriber.Subscribe(ctx, "marquee:events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewRedisNotifier(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	defer n.Close()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, n.Notify(ctx, Event{Entity: "playlist", Action: ActionUpdated, ID: "p1", TenantID: "t1", At: at}))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "playlist", got.Entity)
		assert.Equal(t, ActionUpdated, got.Action)
		assert.Equal(t, "t1", got.TenantID)
		assert.True(t, at.Equal(got.At))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestRedisNotifierReportsFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	n := NewRedisNotifier(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "events")
	defer n.Close()
	mr.Close()

	assert.Error(t, n.Notify(context.Background(), Event{Entity: "device", ID: "d1"}))
}
