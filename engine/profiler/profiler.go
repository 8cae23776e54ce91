package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
)

// StatsSource provides the counters of the most recent frame.
type StatsSource interface {
	FrameStats() scene.FrameStats
}

// Profiler tracks frame rate, submission counters and memory statistics.
// Outputs a summary to the logger at a configurable interval.
type Profiler struct {
	source StatsSource
	logger *slog.Logger
	now    func() time.Time

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	drawCalls     uint64
	dispatchCalls uint64
	renderables   uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and logging goes to slog.Default().
//
// Parameters:
//   - source: the frame statistics to sample each tick, or nil to log timing and memory only
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(source StatsSource, options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		source:         source,
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame, after the frame has been flushed.
// Accumulates the frame's counters and logs a summary when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	if p.source != nil {
		fs := p.source.FrameStats()
		p.drawCalls += uint64(fs.DrawCalls)
		p.dispatchCalls += uint64(fs.DispatchCalls)
		p.renderables += uint64(fs.RenderablesRendered)
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	secs := elapsed.Seconds()
	fps := float64(p.frameCount) / secs

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a ring of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	frames := float64(p.frameCount)
	p.logger.Info("profiler",
		slog.Float64("fps", fps),
		slog.Float64("draw_calls_per_frame", float64(p.drawCalls)/frames),
		slog.Float64("dispatch_calls_per_frame", float64(p.dispatchCalls)/frames),
		slog.Float64("renderables_per_frame", float64(p.renderables)/frames),
		slog.Float64("heap_mb", allocMB),
		slog.Float64("alloc_rate_mb_s", allocRateMB),
		slog.Uint64("gc", uint64(gcCount)),
		slog.Uint64("gc_last_pause_us", lastPauseUs),
		slog.Uint64("gc_max_pause_us", maxPauseUs),
		slog.Float64("sys_mb", sysMB),
	)

	p.frameCount = 0
	p.drawCalls, p.dispatchCalls, p.renderables = 0, 0, 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
