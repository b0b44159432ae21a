// Package parallel runs a bulk operation over an index space on a
// group of worker goroutines. The space is divided into contiguous,
// non-overlapping ranges, one per worker, and the per-worker outcomes
// are combined into a single result.
package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var log = logrus.WithField(trace.Component, "parallel")

// Range is the half-open index range [From, To) assigned to a worker.
type Range struct {
	From, To int
}

// Len returns the number of indexes in the range.
func (r Range) Len() int {
	return r.To - r.From
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.From, r.To)
}

// Workers returns the number of workers to use for a space of the
// given size when at most limit workers are allowed: never more than
// there are indexes to process, and at least one for a non-empty space.
func Workers(limit, space int) int {
	if space <= 0 {
		return 0
	}
	return min(space, max(1, limit))
}

// Split divides the space [0, space) into the given number of
// contiguous ranges. Each range is sized by dividing what remains of
// the space by the number of workers still to be assigned; the final
// range always extends to the end of the space.
func Split(space, workers int) []Range {
	if space <= 0 || workers <= 0 {
		return nil
	}
	ranges := make([]Range, workers)
	next := 0
	for i := range ranges {
		size := (space - next) / (workers - i)
		to := next + size
		if i == workers-1 {
			to = space
		}
		ranges[i] = Range{From: next, To: to}
		next += size
	}
	return ranges
}

// Config configures an Engine.
type Config struct {
	// MaxWorkers caps the number of workers used for a single call.
	// It defaults to runtime.GOMAXPROCS(0).
	MaxWorkers int
	// Slots bounds the number of worker goroutines running at once
	// across every engine sharing it. A worker that cannot acquire a
	// slot is not started; its range runs on the calling goroutine
	// instead. It defaults to a process-wide semaphore.
	Slots *semaphore.Weighted
	// Logger is the logger to use.
	Logger logrus.FieldLogger
}

// CheckAndSetDefaults validates the config and sets default values.
func (c *Config) CheckAndSetDefaults() error {
	if c.MaxWorkers < 0 {
		return trace.BadParameter("MaxWorkers must not be negative, got %d", c.MaxWorkers)
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	if c.Slots == nil {
		c.Slots = defaultSlots()
	}
	if c.Logger == nil {
		c.Logger = log
	}
	return nil
}

var defaultSlots = sync.OnceValue(func() *semaphore.Weighted {
	return semaphore.NewWeighted(int64(4 * runtime.GOMAXPROCS(0)))
})

// Engine executes work functions over partitioned index spaces.
// It is safe for concurrent use; it holds no per-call state.
type Engine struct {
	Config
}

// New returns a new engine using the given configuration.
func New(config Config) (*Engine, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Engine{Config: config}, nil
}

// Run splits [0, space) between workers and calls work once per
// worker range. It blocks until every worker has returned and reports
// whether all of them returned true. Workers do not observe each
// other: a worker returning false does not stop the others, which
// always run to completion.
//
// An empty space runs no workers and reports true.
func (e *Engine) Run(space int, work func(Range) bool) bool {
	ranges := Split(space, Workers(e.MaxWorkers, space))
	switch len(ranges) {
	case 0:
		return true
	case 1:
		return work(ranges[0])
	}
	results := make([]bool, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		if !e.Slots.TryAcquire(1) {
			e.Logger.WithField("range", r).Debug("Worker slot unavailable, running range inline.")
			results[i] = work(r)
			continue
		}
		wg.Add(1)
		go func() {
			defer func() {
				e.Slots.Release(1)
				wg.Done()
			}()
			results[i] = work(r)
		}()
	}
	wg.Wait()
	return all(results)
}

func all(results []bool) bool {
	ok := true
	for _, r := range results {
		ok = ok && r
	}
	return ok
}
