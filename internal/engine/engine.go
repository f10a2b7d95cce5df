package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storescrapers/catalogworker/helpers"
	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/internal/pipeline"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/services/cache"
)

// Fetcher retrieves a URL with optional per-request headers
type Fetcher func(url string, headers map[string]string) (*helpers.FetchResult, error)

// Options configures an Engine
type Options struct {
	// Fetch is the page fetcher; defaults to helpers.Fetch
	Fetch Fetcher

	// Pipelines are applied to every item in order
	Pipelines []pipeline.Pipeline

	// Cache holds rate-limit block keys; may be nil
	Cache cache.CacheService

	// Concurrency bounds the number of in-flight fetches
	Concurrency int

	// BlockTime is how long to stop fetching after being rate limited
	BlockTime time.Duration
}

// Engine dispatches fetch requests with bounded concurrency and routes
// responses back to their parse callbacks. Items flow through the
// pipeline chain; follow-up requests are re-queued. Sibling requests
// complete in no particular order, and a failure in one branch never
// aborts its siblings.
type Engine struct {
	fetch     Fetcher
	pipelines []pipeline.Pipeline
	cacheSvc  cache.CacheService
	blockTime time.Duration
	log       *logger.Logger

	sem  chan struct{}
	wg   sync.WaitGroup
	seen sync.Map
}

// New creates a new engine
func New(opts Options) *Engine {
	fetch := opts.Fetch
	if fetch == nil {
		fetch = helpers.Fetch
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	blockTime := opts.BlockTime
	if blockTime == 0 {
		blockTime = 300 * time.Second
	}

	return &Engine{
		fetch:     fetch,
		pipelines: opts.Pipelines,
		cacheSvc:  opts.Cache,
		blockTime: blockTime,
		log:       logger.ForEngine(),
		sem:       make(chan struct{}, concurrency),
	}
}

// Run drains the scraper's request graph and blocks until every branch
// has completed or ctx is canceled
func (e *Engine) Run(ctx context.Context, s Scraper) error {
	start := time.Now()
	for _, req := range s.StartRequests() {
		e.submit(ctx, s, req)
	}
	e.wg.Wait()

	e.log.Info().
		Str("scraper", s.Name()).
		Dur("elapsed", time.Since(start)).
		Msg("Run complete")
	return ctx.Err()
}

// submit queues one request. The per-run URL dedup happens here so a
// request graph that loops back on itself still terminates.
func (e *Engine) submit(ctx context.Context, s Scraper, req *Request) {
	if req == nil || req.URL == "" || req.Parse == nil {
		return
	}
	if _, dup := e.seen.LoadOrStore(req.URL, struct{}{}); dup {
		e.log.Debug().Str("url", req.URL).Msg("Skipping duplicate request")
		return
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.sem <- struct{}{}
		defer func() { <-e.sem }()
		e.process(ctx, s, req)
	}()
}

// process fetches one request and runs its parse callback. A panic in
// the callback terminates this branch only.
func (e *Engine) process(ctx context.Context, s Scraper, req *Request) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Str("url", req.URL).
				Interface("panic", r).
				Msg("Parse callback panicked, branch terminated")
		}
	}()

	if ctx.Err() != nil {
		return
	}

	res, err := e.fetchBlocked(s, req)
	if err != nil {
		e.log.Error().Err(err).Str("url", req.URL).Msg("Fetch failed")
		return
	}

	result, err := req.Parse(&Response{URL: res.URL, Body: res.Body})
	if err != nil {
		e.log.Error().Err(err).Str("url", req.URL).Msg("Parse failed")
		return
	}
	if result == nil {
		return
	}

	for _, it := range result.Items {
		e.processItem(ctx, it)
	}
	for _, child := range result.Requests {
		e.submit(ctx, s, child)
	}
}

// fetchBlocked fetches a request unless the scraper is currently rate
// limited, and sets the block key when the site rate limits us
func (e *Engine) fetchBlocked(s Scraper, req *Request) (*helpers.FetchResult, error) {
	blockKey := s.Name() + "_rate_limited"
	if e.cacheSvc != nil {
		if _, err := e.cacheSvc.Get(blockKey); err == nil {
			return nil, fmt.Errorf("%s: blocked for %d seconds after rate limiting", s.Name(), int(e.blockTime/time.Second))
		}
	}

	res, err := e.fetch(req.URL, req.Headers)
	if err != nil {
		if e.cacheSvc != nil && strings.HasPrefix(err.Error(), "rate limited") {
			e.cacheSvc.Set(blockKey, []byte(fmt.Sprintf("%d", int(e.blockTime/time.Second))), e.blockTime)
		}
		return nil, err
	}
	return res, nil
}

// processItem runs one record through the pipeline chain. A stage error
// drops the record; later records are unaffected.
func (e *Engine) processItem(ctx context.Context, it item.Item) {
	var err error
	for _, p := range e.pipelines {
		it, err = p.ProcessItem(ctx, it)
		if err != nil {
			e.log.Error().Err(err).Str("stage", p.Name()).Msg("Pipeline stage failed, record dropped")
			return
		}
		if it == nil {
			return
		}
	}
}
