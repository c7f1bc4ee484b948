package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test world defaults
	if cfg.World.Size != 10000.0 {
		t.Errorf("expected world size 10000, got %f", cfg.World.Size)
	}
	if cfg.World.ChunksPerAxis != 16 {
		t.Errorf("expected 16 chunks per axis, got %d", cfg.World.ChunksPerAxis)
	}

	// Test physics defaults
	if cfg.Physics.Gravity != 35.0 {
		t.Errorf("expected gravity 35, got %f", cfg.Physics.Gravity)
	}
	if cfg.Physics.TerminalVelocity >= 0 {
		t.Error("terminal velocity must be negative")
	}
	if cfg.Physics.MaxSteps != 5 {
		t.Errorf("expected 5 max steps, got %d", cfg.Physics.MaxSteps)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestChunkSize(t *testing.T) {
	w := WorldConfig{Size: 10000, ChunksPerAxis: 16}
	if got := w.ChunkSize(); got != 625.0 {
		t.Errorf("expected chunk size 625, got %f", got)
	}
}

func TestChunkRadius(t *testing.T) {
	w := WorldConfig{Size: 1000, ChunksPerAxis: 10}
	// Half the diagonal of a 100x100 square.
	want := float32(70.7106)
	got := w.ChunkRadius()
	if got < want-0.01 || got > want+0.01 {
		t.Errorf("expected chunk radius ~%f, got %f", want, got)
	}
}

func TestContactDistance(t *testing.T) {
	p := PhysicsConfig{PlayerRadius: 0.3, WallThickness: 0.5}
	if got := p.ContactDistance(); got != 0.8 {
		t.Errorf("expected contact distance 0.8, got %f", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
graphics:
  width: 1920
  height: 1080
world:
  size: 5000
  chunks_per_axis: 8
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.World.Size != 5000 {
		t.Errorf("expected world size 5000, got %f", cfg.World.Size)
	}
	if cfg.World.ChunksPerAxis != 8 {
		t.Errorf("expected 8 chunks per axis, got %d", cfg.World.ChunksPerAxis)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}

	// Untouched values keep their defaults
	if cfg.Physics.Gravity != 35.0 {
		t.Errorf("expected default gravity, got %f", cfg.Physics.Gravity)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.World.ChunksPerAxis = 0
	if err := cfg.validate(); err == nil {
		t.Error("expected error for zero chunks_per_axis")
	}

	cfg = Default()
	cfg.Physics.StepSize = -1
	if err := cfg.validate(); err == nil {
		t.Error("expected error for negative step_size")
	}

	if err := Default().validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("round-trip lost width, got %d", loaded.Graphics.Width)
	}
}
