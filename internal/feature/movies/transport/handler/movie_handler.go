// Package handler はmoviesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/api"
	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/transport/http/dto"
	"movie_backend/internal/feature/movies/usecase"
)

// MovieUsecase は映画カタログ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MovieUsecase interface {
	ListMovies(ctx context.Context, req entity.PageRequest) (*entity.MoviePage, error)
	CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	GetMovie(ctx context.Context, id string) (*entity.Movie, error)
	UpdateMovie(ctx context.Context, id string, patch entity.MoviePatch) (*entity.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// MovieHandler は映画カタログのHTTPリクエストを処理します。
type MovieHandler struct {
	uc MovieUsecase
}

// NewMovieHandler は指定されたusecaseでMovieHandlerの新しいインスタンスを生成します。
func NewMovieHandler(uc MovieUsecase) *MovieHandler {
	return &MovieHandler{uc: uc}
}

// ListMovies はページ指定とタイトルフィルタで映画一覧を返します。
//
// エンドポイント例:
// GET /api/movies?page=1&perPage=10&title=matrix
func (h *MovieHandler) ListMovies(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrInvalidPagination.Error()})
		return
	}
	req, err := q.ToPageRequest()
	if err != nil {
		h.writeError(c, "list movies", err)
		return
	}
	page, err := h.uc.ListMovies(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "list movies", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMovieListResponse(page))
}

// CreateMovie は映画を作成し、生成されたIDを含むドキュメントを201で返します。
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.writeError(c, "create movie", err)
		return
	}
	movie, err := dto.ParseMovie(body)
	if err != nil {
		h.writeError(c, "create movie", err)
		return
	}
	created, err := h.uc.CreateMovie(c.Request.Context(), movie)
	if err != nil {
		h.writeError(c, "create movie", err)
		return
	}
	slog.Info("movie created", "id", created.ID.Hex(), "title", created.Title)
	c.JSON(http.StatusCreated, created)
}

// GetMovie はIDで映画を返します。
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.uc.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get movie", err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// UpdateMovie はボディに含まれるフィールドのみを更新し、更新後のドキュメントを返します。
func (h *MovieHandler) UpdateMovie(c *gin.Context) {
	id := c.Param("id")
	if err := usecase.ValidateMovieID(id); err != nil {
		h.writeError(c, "update movie", err)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		h.writeError(c, "update movie", err)
		return
	}
	patch, err := dto.ParseMoviePatch(body)
	if err != nil {
		h.writeError(c, "update movie", err)
		return
	}
	movie, err := h.uc.UpdateMovie(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, "update movie", err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// DeleteMovie はIDで映画を削除し、確認メッセージを返します。
func (h *MovieHandler) DeleteMovie(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.DeleteMovie(c.Request.Context(), id); err != nil {
		h.writeError(c, "delete movie", err)
		return
	}
	slog.Info("movie deleted", "id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Movie deleted successfully"})
}

// writeError はエラーをHTTPステータスとメッセージに変換します。
// 想定外のエラーの詳細はログにのみ出力します。
func (h *MovieHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidPagination):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrInvalidPagination.Error()})
	case errors.Is(err, usecase.ErrPageOutOfRange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid page number"})
	case errors.Is(err, usecase.ErrInvalidMovieID):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
	case errors.Is(err, usecase.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Update data cannot be empty"})
	case errors.Is(err, usecase.ErrInvalidMovie):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, dto.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
	case errors.Is(err, usecase.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
	default:
		slog.Error(op+" failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
