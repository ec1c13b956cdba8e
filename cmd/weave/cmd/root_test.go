package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("weave %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.Contains(out, "weave version "+Version) {
		t.Fatalf("version output = %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	yaml := "window:\n  width: 320\n  height: 240\n"
	if err := os.WriteFile(filepath.Join(dir, "weave.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "config", "-C", dir)
	for _, want := range []string{
		"module: example.com/demo",
		"name: demo",
		"viewport_width_px: 320",
		"viewport_height_px: 240",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "run", "-C", dir, "--passes", "3", "--duration", "2s", "--interval", "1ms")
	if !strings.Contains(out, "passes:      3") {
		t.Fatalf("run output = %q", out)
	}
	for _, want := range []string{"rendered:    ", "Phase", "layout", "render"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandRejectsBadDuration(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-C", t.TempDir(), "--duration", "0s"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error for a zero duration")
	}
}
