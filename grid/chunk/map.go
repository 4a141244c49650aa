package chunk

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-gridfft/grid"
)

// MapOption configures a Map run.
type MapOption func(*mapConfig)

type mapConfig struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers caps the number of concurrent block workers. Values < 1
// mean one worker per CPU.
func WithWorkers(n int) MapOption {
	return func(c *mapConfig) {
		c.workers = n
	}
}

// WithLogger emits per-run debug logs to l. Nil stays silent.
func WithLogger(l *slog.Logger) MapOption {
	return func(c *mapConfig) {
		c.logger = l
	}
}

// Map applies fn to every block on a worker pool and collects the
// results into a new chunked set with the same layout.
//
// fn may change dim names and sizes along unchunked dims, but each
// chunked dim must survive with its name and block length intact so
// the results can still be joined. fn runs concurrently; it must not
// share mutable state across calls. The first error cancels the run
// and is returned.
func Map[T, U grid.Element](
	ctx context.Context,
	c *Chunked[T],
	fn func(context.Context, *Block[T]) (*grid.Grid[U], error),
	opts ...MapOption,
) (*Chunked[U], error) {
	if c == nil || len(c.blocks) == 0 {
		return nil, ErrEmpty
	}

	cfg := mapConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	workers := cfg.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(c.blocks) {
		workers = len(c.blocks)
	}

	if cfg.logger != nil {
		cfg.logger.Debug("mapping blocks",
			"blocks", len(c.blocks),
			"workers", workers,
			"spec", c.Spec().String(),
		)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*grid.Grid[U], len(c.blocks))
	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				blk := c.Block(i)
				out, err := fn(ctx, blk)
				if err != nil {
					fail(fmt.Errorf("chunk: block %d: %w", i, err))
					return
				}
				if out == nil {
					fail(fmt.Errorf("%w: block %d produced no grid", ErrBlockShape, i))
					return
				}
				if err := c.checkMapped(blk, out); err != nil {
					fail(err)
					return
				}
				results[i] = out
			}
		}()
	}

feed:
	for i := range c.blocks {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Chunked[U]{
		chunkDims:  c.chunkDims,
		chunkSizes: c.chunkSizes,
		counts:     c.counts,
		blocks:     results,
	}, nil
}

// checkMapped verifies that a mapped block kept every chunked dim with
// its original length.
func (c *Chunked[T]) checkMapped(in *Block[T], out grider) error {
	for _, d := range c.chunkDims {
		want, err := in.Grid.Len(d)
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrBlockShape, in.Index, err)
		}
		got, err := out.Len(d)
		if err != nil {
			return fmt.Errorf("%w: block %d dropped dim %q", ErrBlockShape, in.Index, d)
		}
		if got != want {
			return fmt.Errorf("%w: block %d resized %q from %d to %d",
				ErrBlockShape, in.Index, d, want, got)
		}
	}
	return nil
}

// grider is the slim view of a grid checkMapped needs, so it can take
// result grids of any element type.
type grider interface {
	Len(dim string) (int, error)
}
