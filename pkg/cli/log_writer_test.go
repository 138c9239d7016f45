package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingWriter struct {
	writes []string
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func TestLogWriter_Lines(t *testing.T) {
	rec := &recordingWriter{}
	w := NewLogWriter(rec)

	w.Write([]byte("first li"))
	if len(rec.writes) != 0 {
		t.Fatalf("partial line forwarded: %q", rec.writes)
	}
	if w.Pending() != 8 {
		t.Errorf("Pending() = %d, want 8", w.Pending())
	}

	w.Write([]byte("ne\nsecond\nthi"))
	want := []string{"first line\n", "second\n"}
	if len(rec.writes) != len(want) {
		t.Fatalf("writes = %q, want %q", rec.writes, want)
	}
	for i := range want {
		if rec.writes[i] != want[i] {
			t.Errorf("writes[%d] = %q, want %q", i, rec.writes[i], want[i])
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := rec.writes[len(rec.writes)-1]; got != "thi" {
		t.Errorf("flushed = %q, want %q", got, "thi")
	}
	if w.Pending() != 0 {
		t.Errorf("Pending() after Close = %d, want 0", w.Pending())
	}
}

func TestLogWriter_LongLine(t *testing.T) {
	var out bytes.Buffer
	w := NewLogWriter(&out)

	line := strings.Repeat("x", 10000) + "\n"
	n, err := w.Write([]byte(line))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != len(line) {
		t.Errorf("n = %d, want %d", n, len(line))
	}
	if out.String() != line {
		t.Errorf("len(out) = %d, want %d", out.Len(), len(line))
	}
}

func TestSetupLogging(t *testing.T) {
	var console bytes.Buffer
	logger, lw := SetupLogging(LogOptions{Stderr: &console})

	logger.Debug("hidden")
	logger.Info("shown", "k", 1)
	lw.Close()

	if strings.Contains(console.String(), "hidden") {
		t.Errorf("debug record logged without Verbose: %s", console.String())
	}
	if !strings.Contains(console.String(), "msg=shown k=1") {
		t.Errorf("console = %q", console.String())
	}
}

func TestSetupLogging_File(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "netbuf.log")
	logger, lw := SetupLogging(LogOptions{Verbose: true, File: path, Stderr: &console})

	logger.Debug("to both", "n", 2)
	if err := lw.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"to both\" n=2") {
		t.Errorf("file = %q", data)
	}
	if !strings.Contains(console.String(), "msg=\"to both\" n=2") {
		t.Errorf("console = %q", console.String())
	}
}
