package engine

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/config"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func newManager(sink renderer.Sink) scene.SceneManager {
	sm := scene.NewSceneManager(sink, scene.WithLogger(discard), scene.WithWorkers(1))
	sm.AddCamera(camera.NewCamera(
		camera.WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}),
		camera.WithAspect(1),
		camera.WithNearFar(0.1, 100),
	))
	n := scene_node.NewSceneNode(scene_node.AttribCullable,
		scene_node.WithRenderables(renderable.NewCube(1,
			renderable.WithTechnique("opaque"),
			renderable.WithHWResourceReady(true),
		)),
	)
	n.AddToSceneManager(sm)
	return sm
}

func TestEngineDrivesScenesInKeyOrder(t *testing.T) {
	back := renderer.NewRecordingSink()
	front := renderer.NewRecordingSink()

	var order []string
	orderSink := func(name string, inner renderer.Sink) renderer.Sink {
		return sinkFunc(func(sub renderer.Submission) (renderer.SubmitStats, error) {
			order = append(order, name)
			return inner.Submit(sub)
		})
	}

	e := NewEngine(
		WithLogger(discard),
		WithTickRate(500),
		WithScene(10, newManager(orderSink("front", front))),
		WithScene(-1, newManager(orderSink("back", back))),
	)

	var ticks atomic.Int32
	e.SetTickCallback(func(float32) { ticks.Add(1) })

	e.Run()
	e.Run()
	assert.True(t, e.Running())
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 5*time.Second, time.Millisecond)
	require.NoError(t, e.Quit())
	require.NoError(t, e.Quit())
	e.Wait()

	assert.GreaterOrEqual(t, e.Frames(), uint64(3))
	require.NotEmpty(t, back.Submissions())
	assert.Equal(t, len(back.Submissions()), len(front.Submissions()))
	for i := 0; i+1 < len(order); i += 2 {
		assert.Equal(t, []string{"back", "front"}, order[i:i+2])
	}

	last, ok := front.Last()
	require.True(t, ok)
	assert.Equal(t, 1, last.NumRenderables())
}

func TestQuitClosesScenes(t *testing.T) {
	sm := newManager(renderer.NewRecordingSink())
	e := NewEngine(WithLogger(discard), WithScene(0, sm))
	e.Run()
	require.NoError(t, e.Quit())

	assert.ErrorIs(t, sm.Update(), scene.ErrClosed)
}

func TestPanickingFrameStopsLoop(t *testing.T) {
	sm := newManager(sinkFunc(func(renderer.Submission) (renderer.SubmitStats, error) {
		panic("device lost")
	}))
	e := NewEngine(WithLogger(discard), WithTickRate(500), WithScene(0, sm))

	e.Run()

	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("frame loop kept running after a panic")
	}

	assert.False(t, e.Running())
	err := e.Quit()
	require.Error(t, err)
	assert.ErrorContains(t, err, "device lost")
	assert.ErrorIs(t, sm.Update(), scene.ErrClosed)
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine(WithLogger(discard))
	sm := newManager(renderer.NewRecordingSink())
	t.Cleanup(func() { _ = sm.Close() })

	assert.Nil(t, e.Scene(1))
	e.AddScene(1, sm)
	assert.Same(t, sm, e.Scene(1))

	scenes := e.Scenes()
	delete(scenes, 1)
	assert.Len(t, e.Scenes(), 1)

	e.RemoveScene(1)
	assert.Empty(t, e.Scenes())
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.TickRate = 120
	cfg.Profiler.Enabled = true
	cfg.Profiler.IntervalSeconds = 0.5

	e := NewEngine(WithConfig(cfg)).(*engine)
	assert.Equal(t, time.Second/120, e.engineTickRate)
	assert.True(t, e.profilingEnabled)
	assert.Equal(t, 500*time.Millisecond, e.profilerInterval)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
}

type sinkFunc func(renderer.Submission) (renderer.SubmitStats, error)

func (f sinkFunc) Submit(sub renderer.Submission) (renderer.SubmitStats, error) { return f(sub) }
