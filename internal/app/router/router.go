// Package router はHTTPルーティングを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "movie_backend/internal/feature/auth/transport/handler"
	moviehandler "movie_backend/internal/feature/movies/transport/handler"
	"movie_backend/internal/platform/http/handler"
	"movie_backend/internal/platform/http/middleware"
	jwtmw "movie_backend/internal/platform/jwt"
	"movie_backend/internal/shared/ratelimiter"
)

// NewRouter は公開ルートと認証必須ルートを登録したginエンジンを返します。
// limiterがnilの場合、認証エンドポイントは制限されません。
func NewRouter(
	authHandler *authhandler.AuthHandler,
	movies *moviehandler.MovieHandler,
	health *handler.HealthHandler,
	authenticator jwtmw.Authenticator,
	limiter *ratelimiter.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLog(), cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	r.GET("/readyz", health.Ready)

	// 新規ユーザー登録・ログイン（JWT 発行）はIPごとに制限
	throttle := ratelimiter.Middleware(limiter)
	r.POST("/signup", throttle, authHandler.Signup)
	r.POST("/signin", throttle, authHandler.Signin)

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になる
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(authenticator), jwtmw.RequireUser())
	{
		api.GET("/movies", movies.ListMovies)
		api.POST("/movies", movies.CreateMovie)
		api.GET("/movies/:id", movies.GetMovie)
		api.PUT("/movies/:id", movies.UpdateMovie)
		api.DELETE("/movies/:id", movies.DeleteMovie)
	}

	return r
}
