package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cruciblehq/cr7/internal/runtime"
)

func TestWriteList(t *testing.T) {
	rt := runtime.New(t.TempDir(), nil)
	for _, st := range []*runtime.State{
		{ID: "web", Pid: 42, Status: runtime.Running, Bundle: "/bundles/web"},
		{ID: "db", Status: runtime.Created, Bundle: "/bundles/db"},
	} {
		if err := rt.Store().Save(st); err != nil {
			t.Fatal(err)
		}
	}
	containers, err := rt.List()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeList(&buf, containers, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "ID PID STATUS BUNDLE" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "db 0 created /bundles/db" {
		t.Errorf("first row = %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); strings.Join(fields, " ") != "web 42 running /bundles/web" {
		t.Errorf("second row = %q", lines[2])
	}

	buf.Reset()
	if err := writeList(&buf, containers, true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "db\nweb\n" {
		t.Errorf("ids = %q, want db and web", buf.String())
	}
}
