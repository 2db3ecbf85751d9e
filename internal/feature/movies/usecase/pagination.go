package usecase

// TotalPages はtotal件をperPage件ずつ分割したときのページ数を返します。
// total が0の場合は0を返します。perPage は正であることが前提です。
func TotalPages(total int64, perPage int) int64 {
	if total <= 0 {
		return 0
	}
	return (total-1)/int64(perPage) + 1
}

// Offset は1始まりのページ番号に対応するスキップ件数を返します。
func Offset(page, perPage int) int64 {
	return int64(page-1) * int64(perPage)
}

// validatePage はストアにアクセスする前にページ指定を検証します。
func validatePage(page, perPage int) error {
	if perPage <= 0 {
		return ErrInvalidPagination
	}
	if page <= 0 {
		return ErrPageOutOfRange
	}
	return nil
}
