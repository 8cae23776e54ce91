package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the file name Load reads when given an empty name.
const DefaultFile = "scene.toml"

// Config is the top-level settings file.
type Config struct {
	Scene    SceneConfig    `toml:"scene"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// SceneConfig holds the scene manager knobs.
type SceneConfig struct {
	// SmallObjectThreshold is the viewport fraction below which bounded nodes are culled.
	SmallObjectThreshold float32 `toml:"small_object_threshold"`

	// UpdateElapse is the fixed time step in seconds; zero uses wall-clock time.
	UpdateElapse float32 `toml:"update_elapse"`

	// TickRate is the background update and frame rate in ticks per second.
	TickRate float64 `toml:"tick_rate"`

	// Workers is the background worker count; zero picks one per spare CPU.
	Workers int `toml:"workers"`

	// GridCellSize selects grid culling when positive.
	GridCellSize float32 `toml:"grid_cell_size"`
}

// ProfilerConfig controls periodic frame statistics logging.
type ProfilerConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// Default returns the settings used when a key is absent from the file.
func Default() Config {
	return Config{
		Scene: SceneConfig{
			TickRate: 60,
		},
		Profiler: ProfilerConfig{
			IntervalSeconds: 1,
		},
	}
}

// Validate reports the first out-of-range setting.
//
// Returns:
//   - error: a description of the invalid setting, or nil
func (c Config) Validate() error {
	s := c.Scene
	if s.SmallObjectThreshold < 0 || s.SmallObjectThreshold > 1 {
		return fmt.Errorf("scene.small_object_threshold must be in [0, 1], got %v", s.SmallObjectThreshold)
	}
	if s.UpdateElapse < 0 {
		return fmt.Errorf("scene.update_elapse must not be negative, got %v", s.UpdateElapse)
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("scene.tick_rate must be positive, got %v", s.TickRate)
	}
	if s.Workers < 0 {
		return fmt.Errorf("scene.workers must not be negative, got %d", s.Workers)
	}
	if s.GridCellSize < 0 {
		return fmt.Errorf("scene.grid_cell_size must not be negative, got %v", s.GridCellSize)
	}
	if c.Profiler.Enabled && c.Profiler.IntervalSeconds <= 0 {
		return fmt.Errorf("profiler.interval_seconds must be positive, got %v", c.Profiler.IntervalSeconds)
	}
	return nil
}

// TickInterval returns the period of one tick.
func (s SceneConfig) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / s.TickRate)
}

// Options converts the settings into scene manager options.
//
// Returns:
//   - []scene.SceneManagerBuilderOption: the options to pass to scene.NewSceneManager
func (s SceneConfig) Options() []scene.SceneManagerBuilderOption {
	opts := []scene.SceneManagerBuilderOption{
		scene.WithSmallObjectThreshold(s.SmallObjectThreshold),
		scene.WithSceneUpdateElapse(s.UpdateElapse),
		scene.WithTickInterval(s.TickInterval()),
	}
	if s.Workers > 0 {
		opts = append(opts, scene.WithWorkers(s.Workers))
	}
	if s.GridCellSize > 0 {
		opts = append(opts, scene.WithVisibility(scene.NewGridVisibility(s.GridCellSize)))
	}
	return opts
}

// Loader reads settings files from an fs.FS.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader rooted at a directory on disk.
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a Loader over fsys.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads and validates a settings file. Keys absent from the file keep their
// Default values; unknown keys are an error.
//
// Parameters:
//   - name: the file path inside the loader's filesystem, or "" for DefaultFile
//
// Returns:
//   - Config: the loaded settings
//   - error: an error if the file cannot be read, parsed or validated
func (l *Loader) Load(name string) (Config, error) {
	if name == "" {
		name = DefaultFile
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}
