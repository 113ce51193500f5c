package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mandate/internal/catalog/models"
	id "mandate/pkg/domain"
)

const courseKeyPrefix = "catalog:course:"

// Source is the primary catalog the cache reads through to.
type Source interface {
	Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (models.Resolutions, error)
	VersionHistory(ctx context.Context, orgID id.OrgID) ([]models.VersionHistoryEntry, error)
}

// CachedStore is a read-through Redis cache in front of a Source. Only
// resolved courses are cached; orphans are always re-checked. Any Redis
// failure degrades to the source.
type CachedStore struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

type CachedStoreOption func(*CachedStore)

func WithCacheTTL(ttl time.Duration) CachedStoreOption {
	return func(c *CachedStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger zerolog.Logger) CachedStoreOption {
	return func(c *CachedStore) {
		c.logger = logger
	}
}

func NewCachedStore(source Source, client *redis.Client, opts ...CachedStoreOption) *CachedStore {
	c := &CachedStore{
		source: source,
		client: client,
		ttl:    10 * time.Minute,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func courseKey(orgID id.OrgID, ref id.CourseVersionRef) string {
	return courseKeyPrefix + orgID.String() + ":" + string(ref)
}

func (c *CachedStore) Resolve(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef) (models.Resolutions, error) {
	out := make(models.Resolutions, len(refs))
	if len(refs) == 0 {
		return out, nil
	}

	misses := c.readCache(ctx, orgID, refs, out)
	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := c.source.Resolve(ctx, orgID, misses)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for _, ref := range misses {
		res := fetched.Lookup(ref)
		out[ref] = res
		if course, ok := res.Course(); ok {
			payload, err := json.Marshal(course)
			if err != nil {
				continue
			}
			pipe.Set(ctx, courseKey(orgID, ref), payload, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("catalog cache write failed")
	}
	return out, nil
}

// readCache fills out with cached courses and returns the refs it missed.
func (c *CachedStore) readCache(ctx context.Context, orgID id.OrgID, refs []id.CourseVersionRef, out models.Resolutions) []id.CourseVersionRef {
	keys := make([]string, len(refs))
	for i, ref := range refs {
		keys[i] = courseKey(orgID, ref)
	}
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("org_id", orgID.String()).Msg("catalog cache read failed, using primary")
		return refs
	}

	misses := make([]id.CourseVersionRef, 0, len(refs))
	for i, ref := range refs {
		raw, ok := vals[i].(string)
		if !ok {
			misses = append(misses, ref)
			continue
		}
		var course models.CourseInfo
		if err := json.Unmarshal([]byte(raw), &course); err != nil {
			misses = append(misses, ref)
			continue
		}
		out[ref] = models.Resolved(course)
	}
	return misses
}

// VersionHistory is not cached; evidence packs need the current history.
func (c *CachedStore) VersionHistory(ctx context.Context, orgID id.OrgID) ([]models.VersionHistoryEntry, error) {
	return c.source.VersionHistory(ctx, orgID)
}
