package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

type fetcher interface {
	Fetch(ctx context.Context) error
}

// Dashboard preloads the stores a screen needs. Each store loads on its own;
// one failing leaves the others untouched.
type Dashboard struct {
	stores  map[string]fetcher
	order   []string
	workers int64
	log     zerolog.Logger
}

func NewDashboard(workers int, l zerolog.Logger) *Dashboard {
	if workers <= 0 {
		workers = 1
	}
	return &Dashboard{stores: map[string]fetcher{}, workers: int64(workers), log: l}
}

func (d *Dashboard) Add(name string, f fetcher) *Dashboard {
	if _, ok := d.stores[name]; !ok {
		d.order = append(d.order, name)
	}
	d.stores[name] = f
	return d
}

// LoadAll fetches every registered store, at most workers at a time, and
// returns the per-store errors (nil entries omitted).
func (d *Dashboard) LoadAll(ctx context.Context) map[string]error {
	sem := semaphore.NewWeighted(d.workers)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = map[string]error{}
	)
	for _, name := range d.order {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs[name] = err
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(name string, f fetcher) {
			defer wg.Done()
			defer sem.Release(1)
			if err := f.Fetch(ctx); err != nil {
				d.log.Warn().Str("store", name).Err(err).Msg("preload failed")
				mu.Lock()
				errs[name] = err
				mu.Unlock()
				return
			}
			d.log.Debug().Str("store", name).Msg("preload ok")
		}(name, d.stores[name])
	}
	wg.Wait()
	return errs
}
