// Package pagination walks the pageNum/pageSize listings of the API.
package pagination

import (
	"context"
	"errors"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 20
	MaxPageSize     = 1000
)

var ErrNilFetch = errors.New("pagination: fetch function is nil")

func Normalize(pageNum, pageSize int) (int, int) {
	if pageNum < 1 {
		pageNum = DefaultPageNum
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return pageNum, pageSize
}

func TotalPages(totalCount, pageSize int) int {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return totalPages
}

// FetchFunc returns one page of items and the total item count reported by
// the API.
type FetchFunc[T any] func(ctx context.Context, pageNum, pageSize int) ([]T, int, error)

// Collect requests pages starting at 1 until totalCount items were collected
// or a page comes back empty. Pages shorter than pageSize do not end the
// walk. The first error stops it; fetch is responsible for honouring ctx.
func Collect[T any](ctx context.Context, pageSize int, fetch FetchFunc[T]) ([]T, error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}

	pageNum, pageSize := Normalize(DefaultPageNum, pageSize)

	var all []T

	for {
		items, totalCount, err := fetch(ctx, pageNum, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(items) == 0 || len(all) >= totalCount {
			return all, nil
		}

		pageNum++
	}
}
