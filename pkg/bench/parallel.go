package bench

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/haivivi/netbuf/pkg/cli"
)

// Summary aggregates several runs of the same workload.
type Summary struct {
	ID      string    `json:"id" yaml:"id"`
	Workers int       `json:"workers" yaml:"workers"`
	Runs    []*Result `json:"runs" yaml:"runs"`

	Appended    int64  `json:"appended" yaml:"appended"`
	Grows       uint64 `json:"grows" yaml:"grows"`
	Compactions uint64 `json:"compactions" yaml:"compactions"`
	Overflows   int    `json:"overflows" yaml:"overflows"`

	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Throughput float64       `json:"throughput_bps" yaml:"throughput_bps"`
}

// RunParallel runs w runs times, seeding run i with w.Seed+i, on at most
// workers goroutines. Every run owns its buffer. Runs are returned in seed
// order. The first failing run cancels the others.
func RunParallel(ctx context.Context, w Workload, runs, workers int) (*Summary, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", ErrInvalidWorkload, runs)
	}
	if workers <= 0 || workers > runs {
		workers = runs
	}

	sum := &Summary{ID: uuid.NewString(), Workers: workers}
	slog.Debug("bench parallel start", "id", sum.ID, "runs", runs, "workers", workers)

	p := pool.NewWithResults[*Result]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(workers)
	start := time.Now()
	for i := 0; i < runs; i++ {
		wi := w
		wi.Seed = w.Seed + uint64(i)
		p.Go(func(ctx context.Context) (*Result, error) {
			return Run(ctx, wi)
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sum.Elapsed = time.Since(start)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Workload.Seed < results[j].Workload.Seed
	})
	sum.Runs = results
	for _, r := range results {
		sum.Appended += r.Appended
		sum.Grows += r.Grows
		sum.Compactions += r.Compactions
		sum.Overflows += r.Overflows
	}
	if sum.Elapsed > 0 {
		sum.Throughput = float64(sum.Appended) / sum.Elapsed.Seconds()
	}

	slog.Debug("bench parallel done", "id", sum.ID, "elapsed", sum.Elapsed,
		"appended", sum.Appended, "grows", sum.Grows)
	return sum, nil
}

// Table renders one line per run followed by the totals.
func (s *Summary) Table(width int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bench %s (%d runs, %d workers)\n", s.ID, len(s.Runs), s.Workers)
	fmt.Fprintf(&sb, "%-8s %12s %8s %12s %10s %10s\n", "SEED", "APPENDED", "GROWS", "COMPACTIONS", "OVERFLOWS", "ELAPSED")
	for _, r := range s.Runs {
		fmt.Fprintf(&sb, "%-8d %12s %8d %12d %10d %10s\n",
			r.Workload.Seed, cli.FormatBytes(r.Appended), r.Grows, r.Compactions, r.Overflows, cli.FormatDuration(r.Elapsed))
	}
	fmt.Fprintf(&sb, "%-8s %12s %8d %12d %10d %10s\n",
		"total", cli.FormatBytes(s.Appended), s.Grows, s.Compactions, s.Overflows, cli.FormatDuration(s.Elapsed))
	fmt.Fprintf(&sb, "throughput %s", cli.FormatRate(s.Appended, s.Elapsed))
	return sb.String()
}
