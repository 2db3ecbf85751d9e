// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// CachingMovieRepository decorates a MovieRepository with Redis caching of
// listing queries. Count and Find results are cached per (title, skip, limit);
// any successful write invalidates the whole namespace.
type CachingMovieRepository struct {
	inner     usecase.MovieRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingMovieRepository decorates a MovieRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "movies".
func NewCachingMovieRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MovieRepository, namespace string) *CachingMovieRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "movies"
	}
	return &CachingMovieRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Count returns the number of matching movies, checking the cache first.
func (c *CachingMovieRepository) Count(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	if c.rdb == nil {
		return c.inner.Count(ctx, filter)
	}

	key := c.countKey(filter)
	if n, err := c.rdb.Get(ctx, key).Int64(); err == nil {
		return n, nil
	}

	n, err := c.inner.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	_ = c.rdb.Set(ctx, key, strconv.FormatInt(n, 10), c.ttl).Err()
	return n, nil
}

// Find retrieves a page of movies, checking the cache first then falling back to the store.
func (c *CachingMovieRepository) Find(ctx context.Context, filter entity.MovieFilter, skip, limit int64) ([]entity.Movie, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, filter, skip, limit)
	}

	key := c.findKey(filter, skip, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Movie
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.Find(ctx, filter, skip, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID is not cached.
func (c *CachingMovieRepository) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	return c.inner.FindByID(ctx, id)
}

// Create inserts a movie and invalidates cached listings.
func (c *CachingMovieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	out, err := c.inner.Create(ctx, movie)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// Update applies a patch and invalidates cached listings.
func (c *CachingMovieRepository) Update(ctx context.Context, id string, patch entity.MoviePatch) (*entity.Movie, error) {
	out, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

// Delete removes a movie and invalidates cached listings.
func (c *CachingMovieRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every listing entry in the namespace. Best effort.
func (c *CachingMovieRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// countKey generates the cache key for a Count query.
// The title filter is case-insensitive, so the key is too.
func (c *CachingMovieRepository) countKey(filter entity.MovieFilter) string {
	return fmt.Sprintf("%s:count:%s", c.namespace, safe(strings.ToLower(filter.Title)))
}

// findKey generates the cache key for a Find query.
func (c *CachingMovieRepository) findKey(filter entity.MovieFilter, skip, limit int64) string {
	return fmt.Sprintf("%s:find:%s:%d:%d",
		c.namespace,
		safe(strings.ToLower(filter.Title)),
		skip,
		limit,
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingMovieRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe encodes user input for use inside a Redis key.
// Distinct inputs always yield distinct outputs, and the result has no ':' or spaces.
func safe(s string) string {
	return url.QueryEscape(s)
}

var _ usecase.MovieRepository = (*CachingMovieRepository)(nil)
