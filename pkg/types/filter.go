package types

import (
	"fmt"
	"sort"
	"strings"
)

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// TotalPages = ceil(total/limit). Ноль при пустой выборке.
func TotalPages(total uint64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + uint64(limit) - 1) / uint64(limit))
}

// CacheKey собирает ключ кеша списка из полной сигнатуры фильтра.
// Ключ начинается с "{entity}-", инвалидация по сущности идёт префиксом.
// Карты сортируются, чтобы одинаковые фильтры давали одинаковый ключ.
func (f Filter) CacheKey(entity string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s-%d-%s", entity, f.Page, f.Search)

	sortKeys := make([]string, 0, len(f.Sort))
	for k := range f.Sort {
		sortKeys = append(sortKeys, k)
	}
	sort.Strings(sortKeys)
	for _, k := range sortKeys {
		fmt.Fprintf(&b, "-%s:%s", k, f.Sort[k])
	}

	filterKeys := make([]string, 0, len(f.Filter))
	for k := range f.Filter {
		filterKeys = append(filterKeys, k)
	}
	sort.Strings(filterKeys)
	for _, k := range filterKeys {
		fmt.Fprintf(&b, "-%s:%v", k, f.Filter[k])
	}

	fmt.Fprintf(&b, "-%d-%d-%t", f.Limit, f.Offset, f.WithPagination)
	return b.String()
}
