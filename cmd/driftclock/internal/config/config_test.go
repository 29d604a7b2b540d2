package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/graphics"
)

func TestResolve_Defaults(t *testing.T) {
	r, err := Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Width != 300 || r.Height != 300 {
		t.Errorf("size = %vx%v, want 300x300", r.Width, r.Height)
	}
	if r.Background != graphics.ColorBlack || r.OutputDir != "frames" {
		t.Errorf("background %v, dir %q", r.Background, r.OutputDir)
	}
	if r.Style != clockface.DefaultStyle() {
		t.Error("expected default style")
	}
}

func TestResolve_ReadsConfigAndStyle(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(FileName, "style: style.yaml\noutput:\n  width: 400\n  height: 250\n  background: \"#FFFFFF\"\n")
	write("style.yaml", "redraw_delay: 250ms\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Width != 400 || r.Height != 250 {
		t.Errorf("size = %vx%v, want 400x250", r.Width, r.Height)
	}
	if r.Background != graphics.ColorWhite {
		t.Errorf("Background = %v, want white", r.Background)
	}
	if r.Style.RedrawDelay.String() != "250ms" {
		t.Errorf("RedrawDelay = %v, want 250ms", r.Style.RedrawDelay)
	}
	if r.StylePath != filepath.Join(dir, "style.yaml") {
		t.Errorf("StylePath = %q", r.StylePath)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "output: [\n"},
		{"bad background", "output:\n  background: teal\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Resolve(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolve_TransparentBackground(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("output:\n  background: \"#00000000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Background != graphics.ColorTransparent {
		t.Errorf("Background = %v, want transparent", r.Background)
	}
}
