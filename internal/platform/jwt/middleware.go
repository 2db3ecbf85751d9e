package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/api"
	"movie_backend/internal/feature/auth/domain/entity"
	"movie_backend/internal/feature/auth/usecase"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's ID (uint).
	ContextUserID = "userID"
	// ContextUser is the gin context key holding the authenticated *entity.User.
	ContextUser = "user"
)

// Authenticator resolves a bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens,
// loads the token's user and restricts access to authenticated users only.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		// 2. Verify the token and resolve the user
		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				slog.Warn("authentication failed", "error", err, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
				return
			}
			slog.Error("authentication lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
			return
		}

		// 3. Attach the user for downstream handlers
		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// RequireUser aborts with 404 when no authenticated user is present in the context.
// It guards routes against a pipeline in which AuthRequired was not applied.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, api.ErrorResponse{Error: "user does not exist anymore"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
