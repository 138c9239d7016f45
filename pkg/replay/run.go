package replay

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/haivivi/netbuf/pkg/buffer"
	"github.com/haivivi/netbuf/pkg/cli"
)

// Options configures Run.
type Options struct {
	// Buffer holds base buffer options, typically from a cli.Profile. The
	// script's own initial and prepend sizes are applied after them.
	Buffer []buffer.Option

	// StopOnError stops at the first failing step and returns its error
	// alongside the partial trace.
	StopOnError bool

	// Logger receives a debug record per step. Defaults to slog.Default().
	Logger *slog.Logger
}

// StepResult records one executed step.
type StepResult struct {
	Index int `json:"index" yaml:"index"`
	Op    Op  `json:"op" yaml:"op"`

	// Uint or Int holds the integer decoded by read_int and peek_int.
	Uint *uint64 `json:"uint,omitempty" yaml:"uint,omitempty"`
	Int  *int64  `json:"int,omitempty" yaml:"int,omitempty"`

	// Offset is the find result, -1 when not found.
	Offset *int `json:"offset,omitempty" yaml:"offset,omitempty"`

	// Text and Hex show bytes returned by peek or captured by retrieve.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Hex  string `json:"hex,omitempty" yaml:"hex,omitempty"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Stats buffer.Stats `json:"stats" yaml:"stats"`
}

// Trace is the outcome of a Run.
type Trace struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name,omitempty" yaml:"name,omitempty"`
	Start  buffer.Stats `json:"start" yaml:"start"`
	Steps  []StepResult `json:"steps" yaml:"steps"`
	Failed int          `json:"failed" yaml:"failed"`
	Final  buffer.Stats `json:"final" yaml:"final"`
}

// Run validates script and applies its steps to a fresh buffer.
//
// A step that fails with a buffer error is recorded and the run continues,
// unless opts.StopOnError is set. The context is checked between steps; on
// cancellation the partial trace is returned with the context error.
func Run(ctx context.Context, script *Script, opts Options) (*Trace, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	b := buffer.New(append(append([]buffer.Option(nil), opts.Buffer...), script.Options()...)...)
	trace := &Trace{
		ID:    uuid.NewString(),
		Name:  script.Name,
		Start: b.Stats(),
		Steps: make([]StepResult, 0, len(script.Steps)),
	}
	log.Debug("replay start", "id", trace.ID, "name", script.Name,
		"initial", b.InitialSize(), "prepend", b.PrependSize(), "steps", len(script.Steps))

	for i := range script.Steps {
		if err := ctx.Err(); err != nil {
			trace.Final = b.Stats()
			return trace, err
		}

		st := &script.Steps[i]
		res := StepResult{Index: i, Op: st.Op}
		err := apply(b, st, &res)
		res.Stats = b.Stats()
		if err != nil {
			res.Error = err.Error()
			trace.Failed++
		}
		trace.Steps = append(trace.Steps, res)

		log.Debug("replay step", "id", trace.ID, "index", i, "op", st.Op,
			"readable", res.Stats.Readable, "writable", res.Stats.Writable,
			"prependable", res.Stats.Prependable, "error", res.Error)

		if err != nil && opts.StopOnError {
			trace.Final = b.Stats()
			return trace, fmt.Errorf("replay: step %d (%s): %w", i, st.Op, err)
		}
	}

	trace.Final = b.Stats()
	log.Debug("replay done", "id", trace.ID, "failed", trace.Failed,
		"grows", trace.Final.Grows, "compactions", trace.Final.Compactions)
	return trace, nil
}

func apply(b *buffer.Buffer, st *Step, res *StepResult) error {
	switch st.Op {
	case OpAppend:
		data, err := st.payload()
		if err != nil {
			return err
		}
		b.Append(data)
	case OpPrepend:
		data, err := st.payload()
		if err != nil {
			return err
		}
		return b.Prepend(data)
	case OpAppendInt:
		appendInt(b, st.Bits, st.Value)
	case OpPrependInt:
		return prependInt(b, st.Bits, st.Value)
	case OpReadInt, OpPeekInt:
		u, err := takeInt(b, st.Bits, st.Op == OpReadInt)
		if err != nil {
			return err
		}
		if st.Signed {
			v := signExtend(u, st.Bits)
			res.Int = &v
		} else {
			res.Uint = &u
		}
	case OpRetrieve:
		if !st.Capture {
			return b.Retrieve(st.N)
		}
		data, err := b.RetrieveBytes(st.N)
		if err != nil {
			return err
		}
		res.setBytes(data)
	case OpRetrieveAll:
		if !st.Capture {
			b.RetrieveAll()
			return nil
		}
		res.setBytes(b.RetrieveAllBytes())
	case OpPeek:
		if st.N == 0 {
			res.setBytes(b.Peek())
			return nil
		}
		data, err := b.PeekN(st.N)
		if err != nil {
			return err
		}
		res.setBytes(data)
	case OpFind:
		off, err := find(b, st)
		if err != nil {
			return err
		}
		res.Offset = &off
	case OpUnwrite:
		return b.Unwrite(st.N)
	case OpShrink:
		b.Shrink(st.Reserve)
	case OpEnsureWritable:
		b.EnsureWritable(st.N)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func find(b *buffer.Buffer, st *Step) (int, error) {
	sep, err := st.separator()
	if err != nil {
		return 0, err
	}
	if sep != nil {
		return b.FindFrom(st.From, sep), nil
	}
	if st.Sep == SepCRLF {
		return b.FindCRLFFrom(st.From), nil
	}
	return b.FindEOLFrom(st.From), nil
}

func (r *StepResult) setBytes(data []byte) {
	r.Text = string(data)
	r.Hex = hex.EncodeToString(data)
}

func appendInt(b *buffer.Buffer, bits int, v int64) {
	switch bits {
	case 8:
		b.AppendUint8(uint8(v))
	case 16:
		b.AppendUint16(uint16(v))
	case 32:
		b.AppendUint32(uint32(v))
	default:
		b.AppendUint64(uint64(v))
	}
}

func prependInt(b *buffer.Buffer, bits int, v int64) error {
	switch bits {
	case 8:
		return b.PrependUint8(uint8(v))
	case 16:
		return b.PrependUint16(uint16(v))
	case 32:
		return b.PrependUint32(uint32(v))
	default:
		return b.PrependUint64(uint64(v))
	}
}

// takeInt reads (consume) or peeks an unsigned integer of the given width.
func takeInt(b *buffer.Buffer, bits int, consume bool) (uint64, error) {
	switch bits {
	case 8:
		if consume {
			v, err := b.ReadUint8()
			return uint64(v), err
		}
		v, err := b.PeekUint8()
		return uint64(v), err
	case 16:
		if consume {
			v, err := b.ReadUint16()
			return uint64(v), err
		}
		v, err := b.PeekUint16()
		return uint64(v), err
	case 32:
		if consume {
			v, err := b.ReadUint32()
			return uint64(v), err
		}
		v, err := b.PeekUint32()
		return uint64(v), err
	default:
		if consume {
			return b.ReadUint64()
		}
		return b.PeekUint64()
	}
}

func signExtend(u uint64, bits int) int64 {
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

// Table renders the trace one step per line, followed by the layout of
// the final buffer.
func (t *Trace) Table(width int) string {
	var sb strings.Builder
	title := "replay " + t.ID
	if t.Name != "" {
		title = fmt.Sprintf("replay %s (%s)", t.Name, t.ID)
	}
	fmt.Fprintf(&sb, "%s\n", title)
	fmt.Fprintf(&sb, "%-4s %-16s %-24s %6s %6s %6s\n", "#", "OP", "RESULT", "PREP", "READ", "WRITE")
	for _, s := range t.Steps {
		fmt.Fprintf(&sb, "%-4d %-16s %-24s %6d %6d %6d\n",
			s.Index, s.Op, truncate(s.summary(), 24),
			s.Stats.Prependable, s.Stats.Readable, s.Stats.Writable)
	}
	sb.WriteString("\n")
	sb.WriteString(cli.NewLayout("final").Render(t.Final, width))
	return sb.String()
}

func (r *StepResult) summary() string {
	switch {
	case r.Error != "":
		return "error: " + r.Error
	case r.Uint != nil:
		return fmt.Sprintf("%d", *r.Uint)
	case r.Int != nil:
		return fmt.Sprintf("%d", *r.Int)
	case r.Offset != nil:
		return fmt.Sprintf("offset %d", *r.Offset)
	case r.Hex != "":
		return fmt.Sprintf("%q", r.Text)
	}
	return "ok"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
