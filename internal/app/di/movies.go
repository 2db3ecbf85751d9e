// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	movieadapters "movie_backend/internal/feature/movies/adapters"
	"movie_backend/internal/feature/movies/usecase"
	"movie_backend/internal/platform/cache"
)

// NewMovieRepository creates a MovieRepository implementation.
// If Redis is available, the MongoDB repository is wrapped with a listing cache.
// Otherwise, MongoDB is used directly.
func NewMovieRepository(coll *mongo.Collection, rdb *redis.Client, ttl time.Duration, namespace string) usecase.MovieRepository {
	repo := movieadapters.NewMovieMongo(coll)
	if rdb == nil {
		slog.Warn("Redis unavailable, running without listing cache")
		return repo
	}
	return cache.NewCachingMovieRepository(rdb, ttl, repo, namespace)
}
