package stubapi

import (
	"net/http"
	"strconv"
	"strings"
)

// getParam returns a path or query parameter value regardless of
// whether the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	return r.URL.Query().Get(name)
}

func getIntParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(getParam(r, name))
	if err != nil {
		return 0
	}
	return v
}

type listQuery struct {
	Search    string
	Category  string
	PriceFrom float64
	PriceTo   float64
	Sort      string
	Page      int
	Limit     int
}

func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	priceFrom, _ := strconv.ParseFloat(q.Get("price_from"), 64)
	priceTo, _ := strconv.ParseFloat(q.Get("price_to"), 64)

	return listQuery{
		Search:    strings.ToLower(strings.TrimSpace(q.Get("search"))),
		Category:  q.Get("category"),
		PriceFrom: priceFrom,
		PriceTo:   priceTo,
		Sort:      q.Get("sort"),
		Page:      page,
		Limit:     limit,
	}
}

// pageSlice cuts one page out of the filtered collection and reports
// the envelope fields alongside it.
func pageSlice[T any](items []T, page, limit int) ([]T, int, bool) {
	total := len(items)
	start := (page - 1) * limit
	if start >= total {
		return []T{}, total, false
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], total, end < total
}

type envelope[T any] struct {
	Results []T  `json:"results"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

func newEnvelope[T any](items []T, page, limit int) envelope[T] {
	results, total, hasMore := pageSlice(items, page, limit)
	return envelope[T]{Results: results, Total: total, HasMore: hasMore}
}
