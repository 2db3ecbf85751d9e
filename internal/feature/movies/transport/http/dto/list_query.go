// Package dto はmoviesフィーチャーのリクエスト・レスポンス変換を提供します。
package dto

import (
	"strconv"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// ListQuery は GET /api/movies のクエリパラメータです。
type ListQuery struct {
	Page    string `form:"page"`
	PerPage string `form:"perPage"`
	Title   string `form:"title"`
}

// ToPageRequest はクエリ文字列を数値に変換します。
// page/perPage が欠落または非数値の場合は usecase.ErrInvalidPagination を返します。
func (q ListQuery) ToPageRequest() (entity.PageRequest, error) {
	page, err := strconv.Atoi(q.Page)
	if err != nil {
		return entity.PageRequest{}, usecase.ErrInvalidPagination
	}
	perPage, err := strconv.Atoi(q.PerPage)
	if err != nil {
		return entity.PageRequest{}, usecase.ErrInvalidPagination
	}
	return entity.PageRequest{Page: page, PerPage: perPage, Title: q.Title}, nil
}

// MovieListResponse は一覧取得のレスポンスです。
type MovieListResponse struct {
	Movies       []entity.Movie `json:"movies"`
	TotalRecords int64          `json:"totalRecords"`
}

// NewMovieListResponse はMoviePageをレスポンス形式に変換します。
func NewMovieListResponse(p *entity.MoviePage) MovieListResponse {
	movies := p.Movies
	if movies == nil {
		movies = []entity.Movie{}
	}
	return MovieListResponse{Movies: movies, TotalRecords: p.TotalRecords}
}
