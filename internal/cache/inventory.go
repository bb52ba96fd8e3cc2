package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	AlbumDetailsKeyPrefix = "album:%s"
)

const (
	// UserTTL is short; every authenticated request reads the acting user.
	UserTTL = 5 * time.Minute
	// AlbumDetailsTTL covers catalog detail responses, which change rarely.
	AlbumDetailsTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func AlbumDetailsKey(albumID string) string {
	return fmt.Sprintf(AlbumDetailsKeyPrefix, albumID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
