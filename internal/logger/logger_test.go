package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

// capture routes log output to a buffer and restores the defaults afterwards.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Fatal("verbose should start off")
	}
	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("SetVerbose(true) did not stick")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("skipped %d candidates", 2) }, "[DEBUG] skipped 2 candidates\n"},
		{"info", func() { Info("profile %s", "linkedin-search") }, "[INFO] profile linkedin-search\n"},
		{"warn", func() { Warn("no anchors found") }, "[WARN] no anchors found\n"},
		{"section", func() { Section("Ingest") }, "\n=== Ingest ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("a")
	Debugw("b", "k", 1)
	Info("c")
	Warn("d")
	Section("e")

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDebugw(t *testing.T) {
	buf := capture(t, true)

	Debugw("dropped candidate", "anchor", 7)

	out := buf.String()
	if !strings.HasPrefix(out, "[DEBUG] dropped candidate ") {
		t.Errorf("unexpected prefix: %q", out)
	}
	if !strings.Contains(out, `"anchor": 7`) {
		t.Errorf("missing structured field: %q", out)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(n%2 == 0)
			Debug("worker %d", n)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}

func TestSync(t *testing.T) {
	buf := capture(t, true)

	Info("before sync")
	Sync()

	if !strings.Contains(buf.String(), "[INFO] before sync") {
		t.Errorf("expected synced output, got %q", buf.String())
	}
}
