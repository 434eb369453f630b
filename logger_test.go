package draft

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	for _, l := range []*slog.Logger{Logger(), ComponentLogger("catalog")} {
		if l == nil {
			t.Fatal("Logger() returned nil")
		}
		if l.Enabled(context.Background(), slog.LevelError) {
			t.Error("default logger should discard every level")
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)

	if Logger() != custom {
		t.Fatal("Logger() did not return the logger set via SetLogger")
	}
	ComponentLogger("annotate").Debug("dropped annotation", "selector", "bottom")
	for _, want := range []string{"dropped annotation", "component=annotate", "selector=bottom"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output = %q, want it to contain %q", buf.String(), want)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.Default())
			} else {
				_ = ComponentLogger("server").Enabled(context.Background(), slog.LevelInfo)
			}
		}()
	}
	wg.Wait()
}
