package replay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haivivi/netbuf/pkg/buffer"
)

const framingScript = `name: framing
initial: 1024
prepend: 8
steps:
  - op: append
    text: "hello\r\n"
  - op: append
    repeat: {char: "x", count: 200}
  - op: append_int
    bits: 32
    value: 16909060
  - op: prepend_int
    bits: 32
    value: 4
  - op: find
    sep: crlf
  - op: retrieve
    n: 50
  - op: read_int
    bits: 16
  - op: retrieve_all
  - op: shrink
    reserve: 0
`

func intPtr(v int) *int { return &v }

func TestRun_Framing(t *testing.T) {
	script, err := Parse([]byte(framingScript), "framing.yaml")
	require.NoError(t, err)
	require.Len(t, script.Steps, 9)

	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)
	require.Len(t, trace.Steps, 9)

	assert.NotEmpty(t, trace.ID)
	assert.Equal(t, "framing", trace.Name)
	assert.Equal(t, 0, trace.Failed)
	assert.Equal(t, 8, trace.Start.Prependable)
	assert.Equal(t, 1024, trace.Start.Writable)

	type regions struct{ prep, read, write int }
	want := []regions{
		{8, 7, 1017},
		{8, 207, 817},
		{8, 211, 813},
		{4, 215, 813},
		{4, 215, 813},
		{54, 165, 813},
		{56, 163, 813},
		{8, 0, 1024},
		{8, 0, 1024},
	}
	for i, w := range want {
		st := trace.Steps[i].Stats
		assert.Equal(t, w, regions{st.Prependable, st.Readable, st.Writable}, "step %d (%s)", i, trace.Steps[i].Op)
	}

	require.NotNil(t, trace.Steps[4].Offset)
	assert.Equal(t, 9, *trace.Steps[4].Offset)

	require.NotNil(t, trace.Steps[6].Uint)
	assert.Equal(t, uint64(0x7878), *trace.Steps[6].Uint)

	assert.Equal(t, 1032, trace.Final.Size)
	assert.Equal(t, trace.Steps[8].Stats, trace.Final)
}

func TestRun_IDsAreUnique(t *testing.T) {
	script := &Script{Steps: []Step{{Op: OpAppend, Text: "a"}}}
	t1, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)
	t2, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, t1.ID, t2.ID)
}

func TestRun_ErrorRecorded(t *testing.T) {
	script := &Script{Steps: []Step{
		{Op: OpAppend, Text: "abc"},
		{Op: OpRetrieve, N: 10},
		{Op: OpRetrieve, N: 1, Capture: true},
	}}

	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)
	require.Len(t, trace.Steps, 3)

	assert.Equal(t, 1, trace.Failed)
	assert.Contains(t, trace.Steps[1].Error, "insufficient readable")
	// The failed step leaves the buffer untouched.
	assert.Equal(t, 3, trace.Steps[1].Stats.Readable)
	assert.Equal(t, "a", trace.Steps[2].Text)
	assert.Equal(t, "61", trace.Steps[2].Hex)
}

func TestRun_StopOnError(t *testing.T) {
	script := &Script{
		Prepend: intPtr(0),
		Steps: []Step{
			{Op: OpAppend, Text: "payload"},
			{Op: OpPrependInt, Bits: 16, Value: 7},
			{Op: OpRetrieveAll},
		},
	}

	trace, err := Run(context.Background(), script, Options{StopOnError: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, buffer.ErrPrependOverflow)
	require.NotNil(t, trace)
	assert.Len(t, trace.Steps, 2)
	assert.Equal(t, 1, trace.Failed)
	assert.Equal(t, 7, trace.Final.Readable)
}

func TestRun_SignedInts(t *testing.T) {
	script := &Script{Steps: []Step{
		{Op: OpAppendInt, Bits: 8, Value: -1},
		{Op: OpAppendInt, Bits: 16, Value: -2},
		{Op: OpAppendInt, Bits: 64, Value: -3},
		{Op: OpPeekInt, Bits: 8, Signed: true},
		{Op: OpReadInt, Bits: 8},
		{Op: OpReadInt, Bits: 16, Signed: true},
		{Op: OpPeekInt, Bits: 64, Signed: true},
		{Op: OpReadInt, Bits: 64},
	}}

	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)

	require.NotNil(t, trace.Steps[3].Int)
	assert.Equal(t, int64(-1), *trace.Steps[3].Int)
	assert.Equal(t, 11, trace.Steps[3].Stats.Readable, "peek must not consume")

	require.NotNil(t, trace.Steps[4].Uint)
	assert.Equal(t, uint64(255), *trace.Steps[4].Uint)

	require.NotNil(t, trace.Steps[5].Int)
	assert.Equal(t, int64(-2), *trace.Steps[5].Int)

	require.NotNil(t, trace.Steps[6].Int)
	assert.Equal(t, int64(-3), *trace.Steps[6].Int)

	require.NotNil(t, trace.Steps[7].Uint)
	assert.Equal(t, ^uint64(2), *trace.Steps[7].Uint)
	assert.Equal(t, 0, trace.Final.Readable)
}

func TestRun_FindAndPeek(t *testing.T) {
	script := &Script{Steps: []Step{
		{Op: OpAppend, Text: "a: 1\nb: 2\r\n"},
		{Op: OpFind, Sep: SepEOL},
		{Op: OpFind, Sep: SepEOL, From: 5},
		{Op: OpFind, Sep: SepCRLF},
		{Op: OpFind, Hex: "0d0a"},
		{Op: OpFind, Sep: "b:"},
		{Op: OpFind, Sep: "zz"},
		{Op: OpPeek, N: 4},
		{Op: OpPeek},
		{Op: OpPeek, N: 100},
	}}

	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)

	offsets := []int{4, 10, 9, 9, 5, -1}
	for i, want := range offsets {
		step := trace.Steps[i+1]
		require.NotNil(t, step.Offset, "step %d", i+1)
		assert.Equal(t, want, *step.Offset, "step %d", i+1)
	}

	assert.Equal(t, "a: 1", trace.Steps[7].Text)
	assert.Equal(t, "a: 1\nb: 2\r\n", trace.Steps[8].Text)
	assert.NotEmpty(t, trace.Steps[9].Error)
	assert.Equal(t, 1, trace.Failed)
}

func TestRun_GrowShrinkUnwrite(t *testing.T) {
	script := &Script{
		Initial: 16,
		Steps: []Step{
			{Op: OpAppend, Repeat: &Repeat{Char: "z", Count: 100}},
			{Op: OpUnwrite, N: 40},
			{Op: OpEnsureWritable, N: 10},
			{Op: OpShrink, Reserve: 4},
			{Op: OpUnwrite, N: 100},
		},
	}

	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), trace.Steps[0].Stats.Grows)
	assert.Equal(t, 100, trace.Steps[0].Stats.Readable)
	assert.Equal(t, 60, trace.Steps[1].Stats.Readable)
	assert.GreaterOrEqual(t, trace.Steps[2].Stats.Writable, 10)

	shrunk := trace.Steps[3].Stats
	assert.Equal(t, 60, shrunk.Readable)
	assert.Equal(t, 8+64, shrunk.Size)
	assert.Equal(t, 4, shrunk.Writable)

	assert.NotEmpty(t, trace.Steps[4].Error)
	assert.Equal(t, 60, trace.Final.Readable)
}

func TestRun_BufferOptions(t *testing.T) {
	script := &Script{Steps: []Step{{Op: OpAppend, Text: "x"}}}

	opts := Options{Buffer: []buffer.Option{buffer.WithInitialSize(64), buffer.WithPrependSize(0)}}
	trace, err := Run(context.Background(), script, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, trace.Start.Prependable)
	assert.Equal(t, 64, trace.Start.Writable)

	// Script sizes win over the base options.
	script.Initial = 32
	script.Prepend = intPtr(4)
	trace, err = Run(context.Background(), script, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, trace.Start.Prependable)
	assert.Equal(t, 32, trace.Start.Writable)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := &Script{Steps: []Step{{Op: OpAppend, Text: "x"}}}
	trace, err := Run(ctx, script, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, trace)
	assert.Empty(t, trace.Steps)
}

func TestRun_Invalid(t *testing.T) {
	_, err := Run(context.Background(), &Script{}, Options{})
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		step Step
		ok   bool
	}{
		{"append text", Step{Op: OpAppend, Text: "a"}, true},
		{"append hex", Step{Op: OpAppend, Hex: "0d0a"}, true},
		{"append repeat", Step{Op: OpAppend, Repeat: &Repeat{Char: "a", Count: 3}}, true},
		{"append nothing", Step{Op: OpAppend}, false},
		{"append two payloads", Step{Op: OpAppend, Text: "a", Hex: "00"}, false},
		{"append bad hex", Step{Op: OpAppend, Hex: "zz"}, false},
		{"append negative repeat", Step{Op: OpAppend, Repeat: &Repeat{Char: "a", Count: -1}}, false},
		{"prepend repeat", Step{Op: OpPrepend, Repeat: &Repeat{Char: "a", Count: 1}}, false},
		{"append_int 24 bits", Step{Op: OpAppendInt, Bits: 24}, false},
		{"append_int overflow", Step{Op: OpAppendInt, Bits: 8, Value: 256}, false},
		{"append_int underflow", Step{Op: OpAppendInt, Bits: 8, Value: -129}, false},
		{"append_int max unsigned", Step{Op: OpAppendInt, Bits: 16, Value: 65535}, true},
		{"prepend_int min signed", Step{Op: OpPrependInt, Bits: 32, Value: -2147483648}, true},
		{"read_int no bits", Step{Op: OpReadInt}, false},
		{"peek_int 64", Step{Op: OpPeekInt, Bits: 64}, true},
		{"retrieve negative", Step{Op: OpRetrieve, N: -1}, false},
		{"find no sep", Step{Op: OpFind}, false},
		{"find negative from", Step{Op: OpFind, Sep: SepCRLF, From: -1}, false},
		{"find bad hex", Step{Op: OpFind, Sep: "x", Hex: "zz"}, false},
		{"find hex", Step{Op: OpFind, Hex: "0a"}, true},
		{"shrink negative", Step{Op: OpShrink, Reserve: -1}, false},
		{"retrieve_all", Step{Op: OpRetrieveAll}, true},
		{"missing op", Step{}, false},
		{"unknown op", Step{Op: "swap"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Steps: []Step{tt.step}}
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidScript)
			}
		})
	}
}

func TestValidate_Sizes(t *testing.T) {
	steps := []Step{{Op: OpRetrieveAll}}
	assert.ErrorIs(t, (&Script{Initial: -1, Steps: steps}).Validate(), ErrInvalidScript)
	assert.ErrorIs(t, (&Script{Prepend: intPtr(-1), Steps: steps}).Validate(), ErrInvalidScript)
	assert.NoError(t, (&Script{Prepend: intPtr(0), Steps: steps}).Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "framing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(framingScript), 0600))
	script, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "framing", script.Name)
	assert.Equal(t, 1024, script.Initial)
	require.NotNil(t, script.Prepend)
	assert.Equal(t, 8, *script.Prepend)
	assert.Equal(t, "hello\r\n", script.Steps[0].Text)
	assert.Equal(t, 200, script.Steps[1].Repeat.Count)

	jsonPath := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"steps":[{"op":"append","hex":"00ff"},{"op":"read_int","bits":16}]}`), 0600))
	script, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, OpReadInt, script.Steps[1].Op)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("steps:\n  - op: explode\n"), 0600))
	_, err = Load(badPath)
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestTrace_Table(t *testing.T) {
	script, err := Parse([]byte(framingScript), "framing.yaml")
	require.NoError(t, err)
	trace, err := Run(context.Background(), script, Options{})
	require.NoError(t, err)

	out := trace.Table(80)
	assert.Contains(t, out, "replay framing ("+trace.ID+")")
	assert.Contains(t, out, "offset 9")
	assert.Contains(t, out, "30840")
	assert.Contains(t, out, "retrieve_all")
	assert.Contains(t, out, "readable 0")
	assert.Equal(t, 1+1+len(trace.Steps), strings.Count(strings.Split(out, "\n\n")[0], "\n")+1)
}
