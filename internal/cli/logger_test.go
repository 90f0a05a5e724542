package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cruciblehq/cr7/internal"
)

func TestNewHandlerFormats(t *testing.T) {
	var text, js bytes.Buffer

	slog.New(newHandler(&text, true)).Info("hello", "id", "web")
	if !strings.Contains(text.String(), "msg=hello") || !strings.Contains(text.String(), "id=web") {
		t.Fatalf("text record = %q", text.String())
	}

	slog.New(newHandler(&js, false)).Info("hello", "id", "web")
	var record map[string]any
	if err := json.Unmarshal(js.Bytes(), &record); err != nil {
		t.Fatalf("json record %q: %v", js.String(), err)
	}
	if record["msg"] != "hello" || record["id"] != "web" {
		t.Fatalf("json record = %v", record)
	}
}

func TestNewHandlerLevel(t *testing.T) {
	defer internal.SetDebug(internal.IsDebug())
	defer internal.SetQuiet(internal.IsQuiet())

	internal.SetDebug(false)
	internal.SetQuiet(true)
	h := newHandler(&bytes.Buffer{}, true)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("quiet handler accepts info records")
	}
	if !h.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("quiet handler drops warnings")
	}

	internal.SetDebug(true)
	h = newHandler(&bytes.Buffer{}, true)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug handler drops debug records")
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.Error() != "container exited with status 3" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
