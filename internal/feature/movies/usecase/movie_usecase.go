// Package usecase は映画カタログ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"movie_backend/internal/feature/movies/domain/entity"
)

var movieIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// MovieRepository は映画カタログの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MovieRepository interface {
	// Count はフィルタに一致するドキュメント数を返します。
	Count(ctx context.Context, filter entity.MovieFilter) (int64, error)
	// Find はフィルタに一致するドキュメントをskip件飛ばして最大limit件返します。
	Find(ctx context.Context, filter entity.MovieFilter, skip, limit int64) ([]entity.Movie, error)
	// FindByID は該当がなければErrMovieNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Movie, error)
	// Create は保存したドキュメント（生成されたIDを含む）を返します。
	Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	// Update は指定フィールドのみを更新し、更新後のドキュメントを返します。
	Update(ctx context.Context, id string, patch entity.MoviePatch) (*entity.Movie, error)
	// Delete は該当がなければErrMovieNotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// movieUsecase は映画カタログ操作のユースケースを実装します。
type movieUsecase struct {
	movies MovieRepository
}

// NewMovieUsecase はmovieUsecaseの新しいインスタンスを生成します。
func NewMovieUsecase(movies MovieRepository) *movieUsecase {
	return &movieUsecase{movies: movies}
}

// ListMovies はページ指定とタイトルフィルタに従って映画一覧を返します。
// ページ指定の検証はストアへのアクセスより前に行われます。
func (u *movieUsecase) ListMovies(ctx context.Context, req entity.PageRequest) (*entity.MoviePage, error) {
	if err := validatePage(req.Page, req.PerPage); err != nil {
		return nil, err
	}

	filter := entity.MovieFilter{Title: req.Title}
	total, err := u.movies.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	if int64(req.Page) > TotalPages(total, req.PerPage) {
		return nil, ErrPageOutOfRange
	}

	movies, err := u.movies.Find(ctx, filter, Offset(req.Page, req.PerPage), int64(req.PerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	if movies == nil {
		movies = []entity.Movie{}
	}
	return &entity.MoviePage{Movies: movies, TotalRecords: total}, nil
}

// CreateMovie は必須項目を検証してから映画を保存します。
func (u *movieUsecase) CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if movie == nil {
		return nil, fmt.Errorf("%w: movie is nil", ErrInvalidMovie)
	}
	if strings.TrimSpace(movie.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidMovie)
	}
	if len(movie.Languages) == 0 {
		return nil, fmt.Errorf("%w: languages is required", ErrInvalidMovie)
	}
	return u.movies.Create(ctx, movie)
}

// GetMovie はIDで映画を取得します。
func (u *movieUsecase) GetMovie(ctx context.Context, id string) (*entity.Movie, error) {
	if err := ValidateMovieID(id); err != nil {
		return nil, err
	}
	return u.movies.FindByID(ctx, id)
}

// UpdateMovie は指定されたフィールドのみを部分更新します。
// 空の更新内容はストアにアクセスせずErrEmptyUpdateを返します。
func (u *movieUsecase) UpdateMovie(ctx context.Context, id string, patch entity.MoviePatch) (*entity.Movie, error) {
	if err := ValidateMovieID(id); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	if v, ok := patch["title"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidMovie)
		}
	}
	if v, ok := patch["languages"]; ok {
		if l, _ := v.([]string); len(l) == 0 {
			return nil, fmt.Errorf("%w: languages cannot be empty", ErrInvalidMovie)
		}
	}
	return u.movies.Update(ctx, id, patch)
}

// DeleteMovie はIDで映画を削除します。
func (u *movieUsecase) DeleteMovie(ctx context.Context, id string) error {
	if err := ValidateMovieID(id); err != nil {
		return err
	}
	return u.movies.Delete(ctx, id)
}

// ValidateMovieID はIDが24桁の16進文字列であることを検証します。
func ValidateMovieID(id string) error {
	if !movieIDPattern.MatchString(id) {
		return ErrInvalidMovieID
	}
	return nil
}
