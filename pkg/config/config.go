// Package config loads the optional weave.yaml of an application and
// resolves the defaults of everything it leaves out.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/weave/pkg/layout"
)

// FileName is the name of the configuration file in the project root.
const FileName = "weave.yaml"

// Config represents the optional weave.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Window WindowConfig `yaml:"window"`
	Debug  *bool        `yaml:"debug,omitempty"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// WindowConfig describes the headless window the root layout context is
// built from. Sizes are in device independent pixels.
type WindowConfig struct {
	Width       float32 `yaml:"width,omitempty"`
	Height      float32 `yaml:"height,omitempty"`
	ScaleFactor float32 `yaml:"scale_factor,omitempty"`
	FontSize    float32 `yaml:"font_size,omitempty"`
	ScreenPPI   float32 `yaml:"screen_ppi,omitempty"`
	Direction   string  `yaml:"direction,omitempty"`
}

// Default window values.
const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultFontSize = 16
)

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	AppID      string
	Debug      bool

	ScaleFactor layout.Factor
	Viewport    layout.PxSize
	FontSize    layout.Px
	ScreenPPI   layout.PPI
	Direction   layout.LayoutDirection
}

// Metrics returns the root layout metrics of the window.
func (r *Resolved) Metrics() layout.Metrics {
	return layout.NewMetrics(r.ScaleFactor, r.Viewport, r.FontSize).
		WithScreenPPI(r.ScreenPPI).
		WithDirection(r.Direction)
}

// Default returns the configuration of an app without weave.yaml or go.mod.
func Default() *Resolved {
	r, err := resolve("", "", &Config{})
	if err != nil {
		panic(err)
	}
	return r
}

// Parse decodes weave.yaml content.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// LoadOptional reads weave.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Resolve loads weave.yaml (if present) and resolves defaults. The module
// path comes from go.mod in dir when there is one.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, modulePath, cfg)
}

func resolve(dir, modulePath string, cfg *Config) (*Resolved, error) {
	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	w := cfg.Window
	if w.Width < 0 || w.Height < 0 || w.ScaleFactor < 0 || w.FontSize < 0 || w.ScreenPPI < 0 {
		return nil, fmt.Errorf("window values cannot be negative")
	}
	scale := layout.Factor(orDefault(w.ScaleFactor, 1))
	ppi := layout.PPI(orDefault(w.ScreenPPI, float32(layout.DefaultPPI)))
	direction, err := parseDirection(w.Direction)
	if err != nil {
		return nil, err
	}

	debug := true
	if cfg.Debug != nil {
		debug = *cfg.Debug
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName,
		AppID:       appID,
		Debug:       debug,
		ScaleFactor: scale,
		Viewport: layout.Size(
			layout.Dip(orDefault(w.Width, DefaultWidth)).ToPx(scale),
			layout.Dip(orDefault(w.Height, DefaultHeight)).ToPx(scale),
		),
		FontSize:  layout.Dip(orDefault(w.FontSize, DefaultFontSize)).ToPx(scale),
		ScreenPPI: ppi,
		Direction: direction,
	}, nil
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func parseDirection(s string) (layout.LayoutDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr":
		return layout.LTR, nil
	case "rtl":
		return layout.RTL, nil
	default:
		return layout.LTR, fmt.Errorf("window.direction must be ltr or rtl (got %q)", s)
	}
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := ""
	if dir != "" {
		base = filepath.Base(dir)
	}
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "weave_app"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var pathParts []string
	for _, p := range parts[1:] {
		if p != "" {
			pathParts = append(pathParts, p)
		}
	}

	segments := append(host, pathParts...)
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment)
	}
	return strings.Join(segments, ".")
}

// sanitizeSegment lowercases segment and keeps letters and digits only. A
// leading digit gets an 'a' prefix so the segment passes validateAppID.
func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}

	if len(out) == 0 {
		out = []rune("app")
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}
	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
