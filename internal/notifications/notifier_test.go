package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishFeed(context.Background(), FeedEvent{Type: EventVibeUpdated}))
	assert.NoError(t, n.PublishUser(context.Background(), 1, FeedEvent{Type: EventUserStarred}))
	assert.NoError(t, n.StartSubscriber(context.Background(), func(string, string) {}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "feed:user:1"},
		{100, "feed:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestFeedEventRoundTrip(t *testing.T) {
	t.Parallel()
	score := 42
	event := FeedEvent{
		Type:      EventVibeUpdated,
		UserID:    7,
		Username:  "vibe_master",
		Vibe:      "Super Positive",
		Score:     &score,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}

	payload, err := event.Encode()
	require.NoError(t, err)

	got, err := DecodeFeedEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, event.UserID, got.UserID)
	require.NotNil(t, got.Score)
	assert.Equal(t, 42, *got.Score)
}

func TestNotifier_SubscriberReceivesBroadcast(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	channels := make(chan string, 4)
	require.NoError(t, n.StartSubscriber(ctx, func(channel, _ string) {
		atomic.AddInt32(&received, 1)
		channels <- channel
	}))

	require.NoError(t, n.PublishFeed(context.Background(), FeedEvent{Type: EventVibeUpdated, UserID: 1}))
	require.NoError(t, n.PublishUser(context.Background(), 9, FeedEvent{Type: EventUserStarred, UserID: 2}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 2
	}, time.Second, 10*time.Millisecond)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		seen[<-channels] = true
	}
	assert.True(t, seen["feed:events"])
	assert.True(t, seen["feed:user:9"])
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	var received int32
	require.NoError(t, n.StartSubscriber(ctx, func(_ string, _ string) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.PublishFeed(context.Background(), FeedEvent{Type: EventVibeUpdated}))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	before := atomic.LoadInt32(&received)
	require.NoError(t, n.PublishFeed(context.Background(), FeedEvent{Type: EventVibeUpdated}))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) > before
	}, 200*time.Millisecond, 10*time.Millisecond)
}
