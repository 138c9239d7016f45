package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haivivi/netbuf/pkg/buffer"
	"github.com/haivivi/netbuf/pkg/cli"
)

// ErrInvalidWorkload is returned by Run when a workload fails validation.
var ErrInvalidWorkload = errors.New("bench: invalid workload")

// cancelCheckEvery is how many iterations run between context checks.
const cancelCheckEvery = 256

// Workload describes a benchmark run.
type Workload struct {
	Initial     int     `json:"initial" yaml:"initial"`
	Prepend     int     `json:"prepend" yaml:"prepend"`
	ChunkSize   int     `json:"chunk_size" yaml:"chunk_size"`
	ChunkJitter int     `json:"chunk_jitter" yaml:"chunk_jitter"`
	DrainRatio  float64 `json:"drain_ratio" yaml:"drain_ratio"`
	HeaderSize  int     `json:"header_size" yaml:"header_size"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Seed        uint64  `json:"seed" yaml:"seed"`
}

// DefaultWorkload returns a workload resembling a request/response
// connection: half of the buffered bytes are consumed after every read.
func DefaultWorkload() Workload {
	return Workload{
		Initial:     buffer.DefaultInitialSize,
		Prepend:     buffer.DefaultPrependSize,
		ChunkSize:   512,
		ChunkJitter: 256,
		DrainRatio:  0.5,
		HeaderSize:  4,
		Iterations:  10000,
		Seed:        1,
	}
}

// Validate reports nonsense workloads.
func (w Workload) Validate() error {
	switch {
	case w.Initial < 0:
		return fmt.Errorf("%w: initial size %d is negative", ErrInvalidWorkload, w.Initial)
	case w.Prepend < 0:
		return fmt.Errorf("%w: prepend size %d is negative", ErrInvalidWorkload, w.Prepend)
	case w.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidWorkload, w.ChunkSize)
	case w.ChunkJitter < 0 || w.ChunkJitter >= w.ChunkSize:
		return fmt.Errorf("%w: chunk jitter must be in [0, %d), got %d", ErrInvalidWorkload, w.ChunkSize, w.ChunkJitter)
	case w.DrainRatio < 0 || w.DrainRatio > 1:
		return fmt.Errorf("%w: drain ratio must be in [0, 1], got %g", ErrInvalidWorkload, w.DrainRatio)
	case w.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidWorkload, w.Iterations)
	}
	switch w.HeaderSize {
	case 0, 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: header size must be 0, 1, 2, 4 or 8, got %d", ErrInvalidWorkload, w.HeaderSize)
	}
	return nil
}

// Result summarizes a Run.
type Result struct {
	RunID    string   `json:"run_id" yaml:"run_id"`
	Workload Workload `json:"workload" yaml:"workload"`

	Appended  int64 `json:"appended" yaml:"appended"`
	Retrieved int64 `json:"retrieved" yaml:"retrieved"`
	Prepends  int   `json:"prepends" yaml:"prepends"`
	Overflows int   `json:"overflows" yaml:"overflows"`

	Grows       uint64 `json:"grows" yaml:"grows"`
	Compactions uint64 `json:"compactions" yaml:"compactions"`

	// Peak is the buffer state when its size was largest.
	Peak  buffer.Stats `json:"peak" yaml:"peak"`
	Final buffer.Stats `json:"final" yaml:"final"`

	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Throughput float64       `json:"throughput_bps" yaml:"throughput_bps"`
}

// Run executes w and drains whatever is left at the end, so Retrieved
// always equals Appended plus the prepended header bytes.
func Run(ctx context.Context, w Workload) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	log := slog.Default()

	b := buffer.New(buffer.WithInitialSize(w.Initial), buffer.WithPrependSize(w.Prepend))
	rng := rand.New(rand.NewPCG(w.Seed, w.Seed^0x9e3779b97f4a7c15))
	res := &Result{
		RunID:    uuid.NewString(),
		Workload: w,
		Peak:     b.Stats(),
	}
	log.Debug("bench start", "run_id", res.RunID, "iterations", w.Iterations,
		"chunk", w.ChunkSize, "jitter", w.ChunkJitter, "drain", w.DrainRatio)

	progressEvery := max(w.Iterations/10, 1)
	start := time.Now()
	for i := 0; i < w.Iterations; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				res.finish(b, time.Since(start))
				return res, err
			}
		}

		n := w.ChunkSize
		if w.ChunkJitter > 0 {
			n += rng.IntN(2*w.ChunkJitter+1) - w.ChunkJitter
		}
		if err := fill(b, n, byte(i)); err != nil {
			return nil, err
		}
		res.Appended += int64(n)

		if w.HeaderSize > 0 {
			if b.PrependableBytes() < w.HeaderSize {
				res.Overflows++
			} else if err := prependLength(b, w.HeaderSize); err != nil {
				return nil, err
			} else {
				res.Prepends++
			}
		}

		if b.Size() > res.Peak.Size {
			res.Peak = b.Stats()
		}

		drain := int(float64(b.ReadableBytes()) * w.DrainRatio)
		if err := b.Retrieve(drain); err != nil {
			return nil, err
		}
		res.Retrieved += int64(drain)

		if (i+1)%progressEvery == 0 {
			log.Debug("bench progress", "run_id", res.RunID, "iteration", i+1,
				"readable", b.ReadableBytes(), "size", b.Size())
		}
	}

	left, err := b.WriteTo(io.Discard)
	if err != nil {
		return nil, fmt.Errorf("bench: drain: %w", err)
	}
	res.Retrieved += left
	res.finish(b, time.Since(start))

	log.Debug("bench done", "run_id", res.RunID, "elapsed", res.Elapsed,
		"grows", res.Grows, "compactions", res.Compactions, "overflows", res.Overflows)
	return res, nil
}

func (r *Result) finish(b *buffer.Buffer, elapsed time.Duration) {
	r.Final = b.Stats()
	r.Grows = r.Final.Grows
	r.Compactions = r.Final.Compactions
	r.Elapsed = elapsed
	if elapsed > 0 {
		r.Throughput = float64(r.Appended) / elapsed.Seconds()
	}
}

// fill writes n bytes of c through the zero-copy write path.
func fill(b *buffer.Buffer, n int, c byte) error {
	b.EnsureWritable(n)
	dst := b.WritableSlice()[:n]
	for i := range dst {
		dst[i] = c
	}
	return b.HasWritten(n)
}

// prependLength prepends the current readable length as a big-endian
// integer of size bytes.
func prependLength(b *buffer.Buffer, size int) error {
	n := b.ReadableBytes()
	switch size {
	case 1:
		return b.PrependUint8(uint8(n))
	case 2:
		return b.PrependUint16(uint16(n))
	case 4:
		return b.PrependUint32(uint32(n))
	default:
		return b.PrependUint64(uint64(n))
	}
}

// Table renders the result as a summary followed by the layout of the
// buffer at its peak size.
func (r *Result) Table(width int) string {
	var sb strings.Builder
	row := func(k, v string) { fmt.Fprintf(&sb, "%-12s %s\n", k, v) }

	row("run", r.RunID)
	row("iterations", fmt.Sprintf("%d (seed %d)", r.Workload.Iterations, r.Workload.Seed))
	row("appended", cli.FormatBytes(r.Appended))
	row("retrieved", cli.FormatBytes(r.Retrieved))
	row("prepends", fmt.Sprintf("%d (%d overflows)", r.Prepends, r.Overflows))
	row("grows", fmt.Sprintf("%d", r.Grows))
	row("compactions", fmt.Sprintf("%d", r.Compactions))
	row("elapsed", cli.FormatDuration(r.Elapsed))
	row("throughput", cli.FormatRate(r.Appended, r.Elapsed))
	sb.WriteString("\n")
	sb.WriteString(cli.NewLayout("peak").Render(r.Peak, width))
	return sb.String()
}
