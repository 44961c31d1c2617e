package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix        = "user:%d"
	currentVibeKeyPrefix = "vibe:current:%d"
)

const (
	UserTTL        = 5 * time.Minute
	CurrentVibeTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func CurrentVibeKey(userID uint) string {
	return fmt.Sprintf(currentVibeKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateCurrentVibe drops the cached current vibe after a quiz
// submission so readers never see the superseded label.
func InvalidateCurrentVibe(ctx context.Context, userID uint) {
	Invalidate(ctx, CurrentVibeKey(userID))
}
