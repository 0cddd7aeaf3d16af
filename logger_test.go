package ass

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/ass/track"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_WithAttrs(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return a nopHandler")
	}
}

func TestLibraryLoggerDefaultSilent(t *testing.T) {
	l := NewLibrary().Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	lib := NewLibrary()
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lib.SetLogger(custom)
	if lib.Logger() != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	lib.SetLogger(nil)
	if lib.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

// TestRendererFollowsLibraryLogger checks that a renderer created before
// SetLogger logs through the new logger.
func TestRendererFollowsLibraryLogger(t *testing.T) {
	lib := NewLibrary()
	r := NewRenderer(lib)

	var buf bytes.Buffer
	lib.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	tr := track.New()
	tr.AllocStyle(track.DefaultStyle("Default"))
	tr.AddEvent(track.Event{Start: 0, End: 1000, Text: "x"})
	r.RenderFrame(tr, 0)
	if !strings.Contains(buf.String(), "frame size not set") {
		t.Errorf("missing frame size warning in %q", buf.String())
	}
}

func TestLibraryHandlerGroups(t *testing.T) {
	lib := NewLibrary()
	var buf bytes.Buffer
	lib.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	l := slog.New(libraryHandler{lib: lib}).WithGroup("fonts").With("family", "Go")
	l.Info("selected")
	out := buf.String()
	if !strings.Contains(out, "fonts.family=Go") {
		t.Errorf("grouped attribute missing from %q", out)
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	lib := NewLibrary()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				lib.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			} else {
				lib.Logger().Info("concurrent")
			}
		}(i)
	}
	wg.Wait()
}
