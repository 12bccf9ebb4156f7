package listview

import (
	"net/url"
	"strconv"
)

// Filter is the query state of a browsing screen. The zero value of a
// field means "not set" and is stripped from the outgoing query, so the
// server only sees meaningfully chosen parameters.
type Filter struct {
	Search    string
	Category  string
	PriceFrom float64
	PriceTo   float64
	Sort      string
	Page      int
	Limit     int
}

func (f Filter) Values() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.PriceFrom > 0 {
		params.Set("price_from", strconv.FormatFloat(f.PriceFrom, 'f', -1, 64))
	}
	if f.PriceTo > 0 {
		params.Set("price_to", strconv.FormatFloat(f.PriceTo, 'f', -1, 64))
	}
	if f.Sort != "" {
		params.Set("sort", f.Sort)
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	return params
}
