package listview

import (
	"context"
	"sync"
	"time"
)

const defaultDebounce = 450 * time.Millisecond

// Page is the one envelope every collection endpoint uses.
type Page[T any] struct {
	Results []T  `json:"results"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// Fetcher loads one page for the given filter.
type Fetcher[T any] func(ctx context.Context, f Filter) (Page[T], error)

type State int

const (
	StateIdle State = iota
	StateLoading
	StatePopulated
	StateEmpty
)

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot[T any] struct {
	State   State
	Loading bool
	Items   []T
	Total   int
	HasMore bool
	Filter  Filter
	Err     error
}

// Controller keeps a server-backed list consistent with its filter
// state. Search input is debounced before it commits; any filter change
// other than an explicit page change resets the page to 1; responses
// carry a generation number so an out-of-order resolution can never
// overwrite fresher results.
type Controller[T any] struct {
	mu sync.Mutex

	ctx      context.Context
	fetch    Fetcher[T]
	debounce time.Duration
	onChange func()

	filter Filter
	buffer string
	timer  *time.Timer

	gen     uint64 // latest dispatched fetch
	applied uint64 // generation of the last applied response

	state   State
	loading bool
	items   []T
	total   int
	hasMore bool
	lastErr error
}

type Option[T any] func(*Controller[T])

func WithDebounce[T any](d time.Duration) Option[T] {
	return func(c *Controller[T]) { c.debounce = d }
}

func WithContext[T any](ctx context.Context) Option[T] {
	return func(c *Controller[T]) { c.ctx = ctx }
}

// WithOnChange registers a callback fired after every state change,
// with no locks held.
func WithOnChange[T any](fn func()) Option[T] {
	return func(c *Controller[T]) { c.onChange = fn }
}

func WithLimit[T any](limit int) Option[T] {
	return func(c *Controller[T]) { c.filter.Limit = limit }
}

func New[T any](fetch Fetcher[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		ctx:      context.Background(),
		fetch:    fetch,
		debounce: defaultDebounce,
		filter:   Filter{Page: 1},
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start issues the initial fetch.
func (c *Controller[T]) Start() {
	c.mu.Lock()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetSearchInput buffers a keystroke. The buffer commits into the
// filter only after the debounce window passes with no further input,
// and only the commit triggers a fetch.
func (c *Controller[T]) SetSearchInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buffer = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.commitSearch)
}

func (c *Controller[T]) commitSearch() {
	c.mu.Lock()
	if c.buffer == c.filter.Search {
		c.mu.Unlock()
		return
	}
	c.filter.Search = c.buffer
	c.filter.Page = 1
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) SetCategory(category string) {
	c.applyFilter(func(f *Filter) { f.Category = category })
}

func (c *Controller[T]) SetPriceBounds(from, to float64) {
	c.applyFilter(func(f *Filter) {
		f.PriceFrom = from
		f.PriceTo = to
	})
}

func (c *Controller[T]) SetSort(sort string) {
	c.applyFilter(func(f *Filter) { f.Sort = sort })
}

// SetPage is the one mutation that does not reset the page.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.filter.Page = page
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// Refresh re-runs the current query unchanged.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// applyFilter commits a filter mutation, resets the page and fetches:
// the old page number may not exist under the new query.
func (c *Controller[T]) applyFilter(mutate func(*Filter)) {
	c.mu.Lock()
	mutate(&c.filter)
	c.filter.Page = 1
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) dispatchLocked() {
	c.gen++
	gen := c.gen
	filter := c.filter
	c.loading = true
	c.state = StateLoading

	go func() {
		page, err := c.fetch(c.ctx, filter)
		c.apply(gen, page, err)
	}()
}

func (c *Controller[T]) apply(gen uint64, page Page[T], err error) {
	c.mu.Lock()

	// The spinner tracks the newest request only: it clears when that
	// request settles, success or error.
	if gen == c.gen {
		c.loading = false
	}
	// Stale guard: a response older than what is already on screen is
	// dropped, so out-of-order resolution cannot regress the list.
	if gen <= c.applied {
		c.mu.Unlock()
		return
	}
	c.applied = gen

	if err != nil {
		// A failed fetch degrades to an empty list; the error is kept
		// for screens that want to say more than "no results".
		c.lastErr = err
		c.items = nil
		c.total = 0
		c.hasMore = false
		c.state = StateEmpty
		c.mu.Unlock()
		c.notify()
		return
	}

	c.lastErr = nil
	c.items = page.Results
	c.total = page.Total
	c.hasMore = page.HasMore
	if len(page.Results) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StatePopulated
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		State:   c.state,
		Loading: c.loading,
		Items:   items,
		Total:   c.total,
		HasMore: c.hasMore,
		Filter:  c.filter,
		Err:     c.lastErr,
	}
}

// Stop cancels a pending debounce commit.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
