package client

import (
	"context"
	"sync"
	"time"

	"github.com/CharlieNndwa/e-commerce-app-v2/catalog"
)

// Searcher debounces catalog searches: rapid successive queries collapse into
// at most one outstanding request per quiet period. The last query wins.
type Searcher struct {
	catalog  *catalog.Client
	delay    time.Duration
	onResult func(query string, products []catalog.Product, err error)

	mu    sync.Mutex
	timer *time.Timer
}

func NewSearcher(c *catalog.Client, delay time.Duration, onResult func(string, []catalog.Product, error)) *Searcher {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Searcher{catalog: c, delay: delay, onResult: onResult}
}

// Query schedules a search after the quiet period, cancelling any previously
// scheduled one.
func (s *Searcher) Query(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(query)
	})
}

// Stop cancels any pending search.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Searcher) run(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := s.catalog.Products(ctx, catalog.ProductQuery{Title: query})
	if s.onResult != nil {
		s.onResult(query, products, err)
	}
}
