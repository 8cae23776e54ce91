package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
)

// engine implements the Engine interface.
// Drives every registered scene manager's frame from one fixed-rate loop.
type engine struct {
	mu *sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once
	runOnce     sync.Once

	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool
	profilerInterval time.Duration

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.SceneManager
	frames uint64

	failure error // set when the frame loop stops on a panic
}

// Engine is the main entry point for the engine.
// It owns a set of scene managers keyed by z-index and runs their frames in ascending key
// order at a fixed tick rate.
type Engine interface {
	// EnableProfiler enables periodic frame statistics logging.
	EnableProfiler()

	// DisableProfiler disables periodic frame statistics logging.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after each frame.
	// Use this for game logic that reads the frame's results.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene manager at the given z-index key.
	// Managers are updated in ascending key order each frame.
	//
	// Parameters:
	//   - key: the z-index determining update order (lower runs first)
	//   - s: the scene manager to register
	AddScene(key int, s scene.SceneManager)

	// RemoveScene removes the scene manager at the given z-index key without closing it.
	//
	// Parameters:
	//   - key: the z-index of the manager to remove
	RemoveScene(key int)

	// Scene retrieves the scene manager registered at the given z-index key.
	// Returns nil if no manager exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the manager to retrieve
	//
	// Returns:
	//   - scene.SceneManager: the manager at the key, or nil if not found
	Scene(key int) scene.SceneManager

	// Scenes returns a copy of all registered scene managers keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.SceneManager: a copy of the scenes map
	Scenes() map[int]scene.SceneManager

	// Frames returns the number of completed engine ticks.
	//
	// Returns:
	//   - uint64: the tick count
	Frames() uint64

	// Run starts every manager's background update thread and the frame loop, then returns.
	// Subsequent calls are no-ops.
	Run()

	// Wait blocks until the frame loop has exited, either through Quit or because a frame panicked.
	Wait()

	// Running reports whether the frame loop is active.
	//
	// Returns:
	//   - bool: true between Run and Quit, unless a frame panicked
	Running() bool

	// Quit stops the frame loop and closes every registered scene manager.
	// Safe to call multiple times; subsequent calls are no-ops.
	//
	// Returns:
	//   - error: the frame loop's panic, if any, joined with the errors returned by the managers' Close
	Quit() error
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, scenes)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.RWMutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.SceneManager),
		logger:           slog.Default(),
		profilerInterval: time.Second,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() {
	e.runOnce.Do(func() {
		e.mu.Lock()
		e.running = true
		if e.profilingEnabled && e.profiler == nil {
			e.profiler = e.newProfiler()
		}
		for _, s := range e.scenes {
			s.Start()
		}
		e.mu.Unlock()

		e.logger.Info("engine started", slog.Duration("tick", e.engineTickRate))
		e.wg.Add(1)
		go e.handleEngine()
	})
}

func (e *engine) Wait() {
	e.wg.Wait()
}

// Quit signals the frame loop to stop, waits for it and closes every manager.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() error {
	var err error
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		e.wg.Wait()

		e.mu.Lock()
		defer e.mu.Unlock()
		e.running = false
		var errs []error
		if e.failure != nil {
			errs = append(errs, e.failure)
		}
		for _, k := range e.sortedKeys() {
			if cerr := e.scenes[k].Close(); cerr != nil {
				errs = append(errs, fmt.Errorf("engine: close scene %d: %w", k, cerr))
			}
		}
		err = errors.Join(errs...)
		e.logger.Info("engine stopped", slog.Uint64("frames", e.frames))
	})
	return err
}

// handleEngine runs the fixed-rate frame loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit channel is closed.
// A panicking frame stops the loop; the panic is reported by Quit.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine loop stopped by panic", slog.Any("panic", r))
			e.mu.Lock()
			e.running = false
			e.failure = fmt.Errorf("engine: frame loop panicked: %v", r)
			e.mu.Unlock()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.frame(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// frame updates every manager in ascending z-index order. A manager whose Update fails is
// logged and skipped for this frame.
func (e *engine) frame(dt float32) {
	e.mu.Lock()
	keys := e.sortedKeys()
	managers := make([]scene.SceneManager, len(keys))
	for i, k := range keys {
		managers[i] = e.scenes[k]
	}
	prof := e.profiler
	profiling := e.profilingEnabled
	cb := e.tickCallback
	e.frames++
	e.mu.Unlock()

	for i, s := range managers {
		if err := s.Update(); err != nil {
			e.logger.Warn("scene update failed", slog.Int("scene", keys[i]), slog.Any("err", err))
		}
	}

	if profiling && prof != nil {
		prof.Tick()
	}
	if cb != nil {
		cb(dt)
	}
}

// sortedKeys returns the scene keys in ascending order. Caller holds e.mu.
func (e *engine) sortedKeys() []int {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// newProfiler samples the lowest-keyed scene. Caller holds e.mu.
func (e *engine) newProfiler() *profiler.Profiler {
	var source profiler.StatsSource
	if keys := e.sortedKeys(); len(keys) > 0 {
		source = e.scenes[keys[0]]
	}
	return profiler.NewProfiler(source,
		profiler.WithInterval(e.profilerInterval),
		profiler.WithLogger(e.logger),
	)
}

// EnableProfiler enables periodic frame statistics logging.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
	if e.profiler == nil {
		e.profiler = e.newProfiler()
	}
}

// DisableProfiler disables periodic frame statistics logging.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send; a pending value is replaced.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called after each frame.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.SceneManager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
	if e.running {
		s.Start()
	}
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.SceneManager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.SceneManager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[int]scene.SceneManager, len(e.scenes))
	for k, v := range e.scenes {
		out[k] = v
	}
	return out
}

func (e *engine) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

func (e *engine) Frames() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.frames
}
