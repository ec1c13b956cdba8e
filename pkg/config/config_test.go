package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weave/pkg/layout"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_NoFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clock")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:        dir,
		AppName:     "clock",
		AppID:       "com.example.clock",
		Debug:       true,
		ScaleFactor: 1,
		Viewport:    layout.Size(DefaultWidth, DefaultHeight),
		FontSize:    DefaultFontSize,
		ScreenPPI:   layout.DefaultPPI,
		Direction:   layout.LTR,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Resolve (-want +got):\n%s", diff)
	}
}

func TestResolve_ModuleDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module github.com/acme/Stop-Watch/v2\n\ngo 1.24\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "github.com/acme/Stop-Watch/v2" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.AppName != "Stop-Watch" {
		t.Errorf("AppName = %q, want Stop-Watch", r.AppName)
	}
	if r.AppID != "com.github.acme.stopwatch.v2" {
		t.Errorf("AppID = %q", r.AppID)
	}
}

func TestResolve_WeaveYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/demo\n")
	writeFile(t, dir, FileName, `
app:
  name: Demo
  id: com.acme.demo
window:
  width: 400
  height: 300
  scale_factor: 2
  font_size: 14
  screen_ppi: 160
  direction: RTL
debug: false
`)

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:        dir,
		ModulePath:  "example.com/demo",
		AppName:     "Demo",
		AppID:       "com.acme.demo",
		Debug:       false,
		ScaleFactor: 2,
		Viewport:    layout.Size(800, 600),
		FontSize:    28,
		ScreenPPI:   160,
		Direction:   layout.RTL,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Resolve (-want +got):\n%s", diff)
	}

	m := r.Metrics()
	if m.Snapshot().Viewport != layout.Size(800, 600) {
		t.Errorf("metrics viewport = %v", m.Snapshot().Viewport)
	}
	if m.Snapshot().Direction != layout.RTL {
		t.Errorf("metrics direction = %v", m.Snapshot().Direction)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "app: [", "failed to parse weave.yaml"},
		{"bad id", "app:\n  id: nodots\n", "at least one '.'"},
		{"digit segment", "app:\n  id: com.1acme\n", "cannot start with a digit"},
		{"bad direction", "window:\n  direction: up\n", "ltr or rtl"},
		{"negative", "window:\n  width: -1\n", "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.yaml)
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Resolve error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	r := Default()
	if r.AppName != "weave_app" {
		t.Errorf("AppName = %q", r.AppName)
	}
	if r.AppID != "com.example.weaveapp" {
		t.Errorf("AppID = %q", r.AppID)
	}
	if r.Viewport != layout.Size(DefaultWidth, DefaultHeight) {
		t.Errorf("Viewport = %v", r.Viewport)
	}
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MyApp", "myapp"},
		{"my-app_2", "myapp2"},
		{"2fast", "a2fast"},
		{"---", "app"},
	}
	for _, tt := range tests {
		if got := sanitizeSegment(tt.in); got != tt.want {
			t.Errorf("sanitizeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultAppID_DigitDirectory(t *testing.T) {
	id := defaultAppID("", "001")
	if id != "com.example.a001" {
		t.Errorf("defaultAppID = %q", id)
	}
	if err := validateAppID(id); err != nil {
		t.Errorf("validateAppID: %v", err)
	}
}
