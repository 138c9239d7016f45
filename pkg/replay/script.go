package replay

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/haivivi/netbuf/pkg/buffer"
	"github.com/haivivi/netbuf/pkg/cli"
)

// ErrInvalidScript is returned when a script fails validation.
var ErrInvalidScript = errors.New("replay: invalid script")

// Op names a buffer operation.
type Op string

const (
	OpAppend         Op = "append"
	OpAppendInt      Op = "append_int"
	OpPrepend        Op = "prepend"
	OpPrependInt     Op = "prepend_int"
	OpRetrieve       Op = "retrieve"
	OpRetrieveAll    Op = "retrieve_all"
	OpReadInt        Op = "read_int"
	OpPeekInt        Op = "peek_int"
	OpPeek           Op = "peek"
	OpFind           Op = "find"
	OpUnwrite        Op = "unwrite"
	OpShrink         Op = "shrink"
	OpEnsureWritable Op = "ensure_writable"
)

// Separators understood by OpFind besides literal text.
const (
	SepCRLF = "crlf"
	SepEOL  = "eol"
)

// Script is a named sequence of steps together with the buffer settings
// to run them against.
type Script struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Initial and Prepend override the sizes from Options.Buffer when set.
	Initial int  `json:"initial,omitempty" yaml:"initial,omitempty"`
	Prepend *int `json:"prepend,omitempty" yaml:"prepend,omitempty"`

	Steps []Step `json:"steps" yaml:"steps"`
}

// Repeat describes Count copies of Char.
type Repeat struct {
	Char  string `json:"char" yaml:"char"`
	Count int    `json:"count" yaml:"count"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op Op `json:"op" yaml:"op"`

	// Payload for append and prepend; exactly one is set. Hex also
	// selects a binary separator for find.
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Hex    string  `json:"hex,omitempty" yaml:"hex,omitempty"`
	Repeat *Repeat `json:"repeat,omitempty" yaml:"repeat,omitempty"`

	// Integer width in bits (8, 16, 32 or 64) for the *_int ops.
	Bits int `json:"bits,omitempty" yaml:"bits,omitempty"`
	// Value written by append_int and prepend_int.
	Value int64 `json:"value,omitempty" yaml:"value,omitempty"`
	// Signed makes read_int and peek_int decode two's complement.
	Signed bool `json:"signed,omitempty" yaml:"signed,omitempty"`

	// N is the byte count for retrieve, peek, unwrite and ensure_writable.
	N int `json:"n,omitempty" yaml:"n,omitempty"`
	// Capture records the bytes consumed by retrieve and retrieve_all.
	Capture bool `json:"capture,omitempty" yaml:"capture,omitempty"`

	// Sep is crlf, eol or literal text; From is the search start offset.
	Sep  string `json:"sep,omitempty" yaml:"sep,omitempty"`
	From int    `json:"from,omitempty" yaml:"from,omitempty"`

	// Reserve is the writable space kept by shrink.
	Reserve int `json:"reserve,omitempty" yaml:"reserve,omitempty"`
}

// Load reads a script file (YAML or JSON, "-" for stdin) and validates it.
func Load(path string) (*Script, error) {
	var s Script
	if err := cli.LoadRequest(path, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Parse decodes and validates a script. filename selects the format by
// extension.
func Parse(data []byte, filename string) (*Script, error) {
	var s Script
	if err := cli.ParseRequest(data, filename, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Options converts the script's buffer settings into buffer options.
func (s *Script) Options() []buffer.Option {
	var opts []buffer.Option
	if s.Initial > 0 {
		opts = append(opts, buffer.WithInitialSize(s.Initial))
	}
	if s.Prepend != nil {
		opts = append(opts, buffer.WithPrependSize(*s.Prepend))
	}
	return opts
}

// Validate checks every step without touching a buffer.
func (s *Script) Validate() error {
	if s.Initial < 0 {
		return fmt.Errorf("%w: initial size %d is negative", ErrInvalidScript, s.Initial)
	}
	if s.Prepend != nil && *s.Prepend < 0 {
		return fmt.Errorf("%w: prepend size %d is negative", ErrInvalidScript, *s.Prepend)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return fmt.Errorf("%w: step %d (%s): %v", ErrInvalidScript, i, s.Steps[i].Op, err)
		}
	}
	return nil
}

func (st *Step) validate() error {
	switch st.Op {
	case OpAppend, OpPrepend:
		set := 0
		if st.Text != "" {
			set++
		}
		if st.Hex != "" {
			set++
		}
		if st.Repeat != nil {
			set++
		}
		if set != 1 {
			return errors.New("exactly one of text, hex or repeat is required")
		}
		if st.Repeat != nil && st.Op == OpPrepend {
			return errors.New("repeat is not supported for prepend")
		}
		_, err := st.payload()
		return err
	case OpAppendInt, OpPrependInt:
		if err := checkBits(st.Bits); err != nil {
			return err
		}
		return checkRange(st.Bits, st.Value)
	case OpReadInt, OpPeekInt:
		return checkBits(st.Bits)
	case OpRetrieve, OpPeek, OpUnwrite, OpEnsureWritable:
		if st.N < 0 {
			return fmt.Errorf("n %d is negative", st.N)
		}
	case OpFind:
		if st.Sep == "" && st.Hex == "" {
			return errors.New("sep or hex is required")
		}
		if st.From < 0 {
			return fmt.Errorf("from %d is negative", st.From)
		}
		_, err := st.separator()
		return err
	case OpShrink:
		if st.Reserve < 0 {
			return fmt.Errorf("reserve %d is negative", st.Reserve)
		}
	case OpRetrieveAll:
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// payload returns the bytes an append or prepend step writes.
func (st *Step) payload() ([]byte, error) {
	switch {
	case st.Hex != "":
		data, err := hex.DecodeString(st.Hex)
		if err != nil {
			return nil, fmt.Errorf("bad hex: %w", err)
		}
		return data, nil
	case st.Repeat != nil:
		if st.Repeat.Count < 0 {
			return nil, fmt.Errorf("repeat count %d is negative", st.Repeat.Count)
		}
		if st.Repeat.Char == "" {
			return nil, errors.New("repeat char is required")
		}
		return []byte(strings.Repeat(st.Repeat.Char, st.Repeat.Count)), nil
	default:
		return []byte(st.Text), nil
	}
}

// separator returns the literal separator for find. It is nil for crlf and
// eol, which have dedicated searches.
func (st *Step) separator() ([]byte, error) {
	if st.Hex != "" {
		data, err := hex.DecodeString(st.Hex)
		if err != nil {
			return nil, fmt.Errorf("bad hex: %w", err)
		}
		if len(data) == 0 {
			return nil, errors.New("empty separator")
		}
		return data, nil
	}
	switch st.Sep {
	case SepCRLF, SepEOL:
		return nil, nil
	}
	return []byte(st.Sep), nil
}

func checkBits(bits int) error {
	switch bits {
	case 8, 16, 32, 64:
		return nil
	}
	return fmt.Errorf("bits must be 8, 16, 32 or 64, got %d", bits)
}

// checkRange accepts values representable as either a signed or an
// unsigned integer of the given width.
func checkRange(bits int, v int64) error {
	if bits == 64 {
		return nil
	}
	lo := -(int64(1) << (bits - 1))
	hi := int64(1)<<bits - 1
	if v < lo || v > hi {
		return fmt.Errorf("value %d does not fit in %d bits", v, bits)
	}
	return nil
}
