package usecase

import "errors"

var (
	// ErrInvalidPagination はpage/perPageが欠落・非数値・非正の場合に返されます。
	ErrInvalidPagination = errors.New("page and perPage must be positive integers")
	// ErrPageOutOfRange は要求ページが結果の範囲外の場合に返されます。
	ErrPageOutOfRange = errors.New("invalid page number")
	// ErrInvalidMovieID はIDが24桁の16進文字列でない場合に返されます。
	ErrInvalidMovieID = errors.New("invalid movie ID format")
	// ErrMovieNotFound は該当する映画が存在しない場合に返されます。
	ErrMovieNotFound = errors.New("movie not found")
	// ErrEmptyUpdate は更新内容が空の場合に返されます。
	ErrEmptyUpdate = errors.New("update data cannot be empty")
	// ErrInvalidMovie は映画ドキュメントが必須項目を満たさない場合に返されます。
	ErrInvalidMovie = errors.New("invalid movie")
)
