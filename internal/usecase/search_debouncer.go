package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
)

// DefaultQuietPeriod is how long after the last keystroke a search
// dispatches.
const DefaultQuietPeriod = 300 * time.Millisecond

// SearchFunc performs the actual search for a debounced query.
type SearchFunc func(ctx context.Context, query string) ([]domain.Product, error)

// ResultFunc receives the outcome of a dispatched search. A cleared
// (short) query delivers nil products and a nil error.
type ResultFunc func(query string, products []domain.Product, err error)

// SearchDebouncer coalesces a stream of query revisions into single
// search dispatches. A new keystroke invalidates any pending timer;
// queries shorter than the search convention only cancel and clear.
// Every dispatch carries a monotonic sequence number and a response is
// dropped unless it belongs to the latest dispatch, so a slow response
// for an earlier query can never overwrite a later one.
type SearchDebouncer struct {
	quiet    time.Duration
	search   SearchFunc
	onResult ResultFunc

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewSearchDebouncer creates a debouncer with the given quiet period;
// zero or negative falls back to DefaultQuietPeriod.
func NewSearchDebouncer(quiet time.Duration, search SearchFunc, onResult ResultFunc) *SearchDebouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &SearchDebouncer{
		quiet:    quiet,
		search:   search,
		onResult: onResult,
	}
}

// Keystroke registers a new query revision. Any pending dispatch
// younger than the quiet period is cancelled first.
func (d *SearchDebouncer) Keystroke(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < catalog.MinQueryLength {
		// Short queries never trigger a search; invalidate anything
		// newer results could race against and clear the consumer.
		d.seq++
		d.onResult(q, nil, nil)
		return
	}

	d.timer = time.AfterFunc(d.quiet, func() {
		d.dispatch(ctx, q)
	})
}

// Stop cancels any pending dispatch and invalidates in-flight ones.
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// dispatch runs the search and delivers the result unless a newer
// dispatch has been issued meanwhile.
func (d *SearchDebouncer) dispatch(ctx context.Context, query string) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	products, err := d.search(ctx, query)

	d.mu.Lock()
	stale := seq != d.seq
	d.mu.Unlock()

	if stale {
		log.Printf("[SEARCH] dropping stale response for %q", query)
		return
	}

	d.onResult(query, products, err)
}
