// internal/workers/restaurants/rank-restaurants/cache.go
package rankrestaurants

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/geo"
)

// Cache stores rankings as JSON. *database.RedisClient satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// cacheKey identifies a ranking by catalog version, order, and the filter set
// and reference it was computed from. Evaluation ignores filter order and
// repeats, so the filters are hashed sorted and deduplicated.
func cacheKey(catalogVersion, order string, set filter.Set, ref geo.Coordinate) string {
	parts := make([]string, 0, len(set))
	seen := make(map[filter.Filter]struct{}, len(set))
	for _, f := range set {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		parts = append(parts, f.String())
	}
	sort.Strings(parts)

	h := sha256.New()
	h.Write([]byte(strings.Join(parts, ",")))
	h.Write([]byte{'@'})
	h.Write([]byte(strconv.FormatFloat(ref.Latitude, 'g', -1, 64)))
	h.Write([]byte{','})
	h.Write([]byte(strconv.FormatFloat(ref.Longitude, 'g', -1, 64)))

	return "rank:" + catalogVersion + ":" + order + ":" + hex.EncodeToString(h.Sum(nil))
}
