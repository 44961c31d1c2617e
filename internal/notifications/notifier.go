package notifications

import (
	"context"
	"log"
	"runtime/debug"
	"strconv"

	"vibecheck/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	feedChannel      = "feed:events"
	userChannelBase  = "feed:user:"
	userChannelGlob  = "feed:user:*"
	broadcastPattern = feedChannel
)

// Notifier publishes feed events into Redis channels. A nil Redis client
// turns every publish into a no-op, so single-process deployments work
// without Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier over the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeed broadcasts a feed event to every subscriber.
func (n *Notifier) PublishFeed(ctx context.Context, event FeedEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	observability.FeedEvents.WithLabelValues(event.Type).Inc()
	return n.rdb.Publish(ctx, feedChannel, payload).Err()
}

// PublishUser sends a feed event to one user's private channel, used for
// events only the affected user should see.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, event FeedEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	observability.FeedEvents.WithLabelValues(event.Type).Inc()
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// StartSubscriber subscribes to the broadcast channel and every per-user
// channel, invoking onMessage for each delivery until ctx is canceled.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, broadcastPattern, userChannelGlob)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in feed subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user's private feed.
func UserChannel(userID uint) string {
	return userChannelBase + strconv.FormatUint(uint64(userID), 10)
}
