package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/config"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables periodic frame statistics logging.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithScene registers a scene manager at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining update order (lower runs first)
//   - s: the scene manager to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.SceneManager) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithLogger sets the structured logger used by the engine and its profiler.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithConfig applies the tick rate and profiler settings from a loaded settings file.
// Scene options are applied separately when the managers are built.
//
// Parameters:
//   - cfg: the loaded settings
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		WithTickRate(cfg.Scene.TickRate)(e)
		e.profilingEnabled = cfg.Profiler.Enabled
		if cfg.Profiler.IntervalSeconds > 0 {
			e.profilerInterval = time.Duration(cfg.Profiler.IntervalSeconds * float64(time.Second))
		}
	}
}
