package shared

import (
	"context"
	"strings"

	"weekgrid/shared/cache"
	"weekgrid/shared/constant"

	"github.com/rs/zerolog/log"
)

// BuildCacheKey joins cache key segments with the conventional separator.
func BuildCacheKey(segments ...string) string {
	return strings.Join(segments, ":")
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+":"+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
