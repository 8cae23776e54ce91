package scene

import (
	"log/slog"
	"time"
)

// SceneManagerBuilderOption is a functional option for configuring a SceneManager.
// Use the With* functions to create options.
type SceneManagerBuilderOption func(s *sceneManager)

// WithVisibility selects the culling strategy. Defaults to NewBruteForceVisibility.
//
// Parameters:
//   - v: the strategy
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithVisibility(v Visibility) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		if v != nil {
			s.visibility = v
		}
	}
}

// WithWorkers sets the number of worker goroutines background ticks fan out over.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithWorkers(n int) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		s.workers = max(n, 1)
	}
}

// WithTickSource drives background ticks from ticks instead of an internal ticker.
//
// Parameters:
//   - ticks: the channel whose receives trigger a tick
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithTickSource(ticks <-chan time.Time) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		s.ticks = ticks
	}
}

// WithTickInterval sets the internal ticker's period. Ignored when WithTickSource is used.
// Defaults to 1/60 s.
//
// Parameters:
//   - d: the tick period
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithTickInterval(d time.Duration) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSmallObjectThreshold sets the initial small-object culling threshold.
//
// Parameters:
//   - area: fraction of the viewport; zero disables size culling
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithSmallObjectThreshold(area float32) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		s.smallObjThreshold = max(area, 0)
	}
}

// WithSceneUpdateElapse sets the initial fixed time step.
//
// Parameters:
//   - seconds: the step; zero selects wall-clock time
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithSceneUpdateElapse(seconds float32) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		s.updateElapse = max(seconds, 0)
	}
}

// WithClock replaces time.Now as the manager's time source.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - SceneManagerBuilderOption: option function to apply
func WithClock(now func() time.Time) SceneManagerBuilderOption {
	return func(s *sceneManager) {
		if now != nil {
			s.now = now
		}
	}
}
