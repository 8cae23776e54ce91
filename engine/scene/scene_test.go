package scene

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, options ...SceneManagerBuilderOption) (*sceneManager, renderer.RecordingSink) {
	t.Helper()
	sink := renderer.NewRecordingSink()
	options = append([]SceneManagerBuilderOption{
		WithLogger(slog.New(slog.DiscardHandler)),
		WithWorkers(2),
		WithSceneUpdateElapse(1.0 / 60),
	}, options...)
	sm := NewSceneManager(sink, options...).(*sceneManager)
	t.Cleanup(func() { _ = sm.Close() })
	return sm, sink
}

func readyBox(min, max mgl32.Vec3, technique string) renderable.Mesh {
	return renderable.NewMesh(
		renderable.WithTechnique(technique),
		renderable.WithBound(common.NewAABB(min, max)),
		renderable.WithPositions([]mgl32.Vec3{min, max, {min[0], max[1], min[2]}}),
		renderable.WithHWResourceReady(true),
	)
}

func cube(half float32, technique string) renderable.Mesh {
	return readyBox(mgl32.Vec3{-half, -half, -half}, mgl32.Vec3{half, half, half}, technique)
}

// lookingAt returns a 45 degree camera with a square viewport.
func lookingAt(eye, target mgl32.Vec3) camera.Camera {
	return camera.NewCamera(
		camera.WithLookAt(eye, target),
		camera.WithAspect(1),
		camera.WithNearFar(0.1, 100),
	)
}

func TestSceneNodeRegistryPreservesOrder(t *testing.T) {
	sm, _ := newTestManager(t)

	nodes := make([]scene_node.Node, 100)
	for i := range nodes {
		nodes[i] = scene_node.NewSceneNode(scene_node.AttribCullable)
		sm.AddSceneNode(nodes[i])
	}

	require.Equal(t, 100, sm.NumSceneNodes())
	for i, n := range nodes {
		assert.Same(t, n, sm.SceneNode(i))
	}

	sm.AddSceneNode(nodes[0])
	sm.DelSceneNode(nodes[0])
	assert.Equal(t, 100, sm.NumSceneNodes())
	assert.Same(t, nodes[1], sm.SceneNode(0))
	assert.Same(t, nodes[0], sm.SceneNode(99))

	sm.DelSceneNode(scene_node.NewSceneNode(0))
	assert.Equal(t, 100, sm.NumSceneNodes())

	assert.Panics(t, func() { sm.SceneNode(100) })
	sm.ClearSceneNodes()
	assert.Zero(t, sm.NumSceneNodes())
}

func TestCameraAndLightRegistries(t *testing.T) {
	sm, _ := newTestManager(t)
	c1 := lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	c2 := lookingAt(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{})
	l := light.NewLight(light.LightTypePoint)

	sm.AddCamera(c1)
	sm.AddCamera(c2)
	sm.AddLight(l)
	require.Equal(t, 2, sm.NumCameras())
	assert.Same(t, c2, sm.Camera(1))
	assert.Same(t, l, sm.Light(0))

	sm.DelCamera(c1)
	assert.Same(t, c2, sm.Camera(0))
	assert.Panics(t, func() { sm.Camera(1) })
	assert.Panics(t, func() { sm.Light(-1) })

	sm.DelLight(l)
	assert.Zero(t, sm.NumLights())
	sm.ClearCameras()
	assert.Zero(t, sm.NumCameras())
	assert.Panics(t, func() { NewSceneManager(nil) })
}

func TestNodeRegistersSubtree(t *testing.T) {
	sm, _ := newTestManager(t)
	child := scene_node.NewSceneNode(scene_node.AttribCullable)
	root := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithChildren(child))

	root.AddToSceneManager(sm)
	require.Equal(t, 2, sm.NumSceneNodes())

	sm.mu.Lock()
	roots := sm.rootsLocked()
	sm.mu.Unlock()
	require.Len(t, roots, 1)
	assert.Same(t, root, roots[0])

	root.DelFromSceneManager(sm)
	assert.Zero(t, sm.NumSceneNodes())
}

func TestUpdateCullsEverythingOutsideFrustum(t *testing.T) {
	sm, sink := newTestManager(t)
	n := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(
		readyBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, "lit"),
		readyBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, "lit"),
	))
	sm.AddSceneNode(n)
	// Looking down +Z from z=10: the boxes are behind the eye.
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 20}))

	require.NoError(t, sm.Update())

	ws := n.PosBoundWS()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, ws.Min)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, ws.Max)
	assert.Equal(t, common.BoundOverlapNo, n.VisibleMark())

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Zero(t, last.NumRenderables())
	assert.Equal(t, FrameStats{}, sm.FrameStats())
	assert.Equal(t, StateIdle, sm.State())
}

func TestUpdateSubmitsVisibleNodes(t *testing.T) {
	sm, sink := newTestManager(t)
	n := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(
		readyBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, "lit"),
		readyBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, "lit"),
	))
	sm.AddSceneNode(n)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())

	assert.Equal(t, common.BoundOverlapYes, n.VisibleMark())
	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, sm.UpdateRequestToken(), last.Token)
	require.Len(t, last.Batches, 1)
	assert.Len(t, last.Batches[0].Renderables, 2)

	stats := sm.FrameStats()
	assert.Equal(t, uint32(1), stats.ObjectsRendered)
	assert.Equal(t, uint32(2), stats.RenderablesRendered)
	assert.Equal(t, uint32(2), sm.NumDrawCalls())
	assert.Equal(t, uint32(6), sm.NumVerticesRendered())
	assert.Equal(t, uint32(2), sm.NumPrimitivesRendered())
	assert.Zero(t, sm.NumDispatchCalls())
}

func TestFlushOrdersBucketsByFirstEncounter(t *testing.T) {
	sm, sink := newTestManager(t)
	techniques := []string{"b", "a", "b", "c", "a"}
	meshes := make([]renderable.Mesh, len(techniques))
	for i, tech := range techniques {
		meshes[i] = cube(0.5, tech)
		sm.AddSceneNode(scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(meshes[i])))
	}
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())

	last, ok := sink.Last()
	require.True(t, ok)
	require.Len(t, last.Batches, 3)
	assert.Equal(t, "b", last.Batches[0].Technique)
	assert.Equal(t, "a", last.Batches[1].Technique)
	assert.Equal(t, "c", last.Batches[2].Technique)
	require.Len(t, last.Batches[0].Renderables, 2)
	assert.Same(t, meshes[0], last.Batches[0].Renderables[0])
	assert.Same(t, meshes[2], last.Batches[0].Renderables[1])
	assert.Same(t, meshes[4], last.Batches[1].Renderables[1])
}

func TestFlushRejectsStaleToken(t *testing.T) {
	sm, sink := newTestManager(t)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())
	require.NoError(t, sm.Update())
	urt := sm.UpdateRequestToken()
	assert.Equal(t, uint32(2), urt)

	assert.ErrorIs(t, sm.Flush(urt-1), ErrStaleUpdate)
	assert.Len(t, sink.Submissions(), 2)

	require.NoError(t, sm.Flush(urt))
	assert.Len(t, sink.Submissions(), 3)
}

func TestFullOverlapSettlesSubtreeWithOneTest(t *testing.T) {
	sm, _ := newTestManager(t)
	leaf := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(0.25, "lit")))
	mid := scene_node.NewSceneNode(scene_node.AttribCullable,
		scene_node.WithRenderables(cube(0.5, "lit")),
		scene_node.WithChildren(leaf),
	)
	sibling := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(0.5, "lit")))
	root := scene_node.NewSceneNode(scene_node.AttribCullable,
		scene_node.WithRenderables(cube(1, "lit")),
		scene_node.WithChildren(mid, sibling),
	)
	sm.AddSceneNode(root)
	require.NoError(t, sm.Update())

	cam := lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	sm.boundTests = 0
	mark := sm.VisibleTestFromParent(root, cam.ViewDir(), cam.EyePos(), cam.ViewProjectionMatrix())

	assert.Equal(t, common.BoundOverlapYes, mark)
	assert.Equal(t, 1, sm.boundTests)
	for _, n := range []scene_node.Node{mid, leaf, sibling} {
		assert.Equal(t, common.BoundOverlapYes, n.VisibleMark())
	}
}

func TestNoOverlapSettlesSubtreeWithOneTest(t *testing.T) {
	sm, _ := newTestManager(t)
	leaf := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(0.25, "lit")))
	root := scene_node.NewSceneNode(scene_node.AttribCullable,
		scene_node.WithRenderables(cube(1, "lit")),
		scene_node.WithChildren(leaf),
	)
	sm.AddSceneNode(root)
	require.NoError(t, sm.Update())

	cam := lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 20})
	sm.boundTests = 0
	mark := sm.VisibleTestFromParent(root, cam.ViewDir(), cam.EyePos(), cam.ViewProjectionMatrix())

	assert.Equal(t, common.BoundOverlapNo, mark)
	assert.Equal(t, common.BoundOverlapNo, leaf.VisibleMark())
	assert.Equal(t, 1, sm.boundTests)
}

func TestPartialOverlapTestsChildren(t *testing.T) {
	sm, sink := newTestManager(t)
	inside := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(0.5, "lit")))
	outside := scene_node.NewSceneNode(scene_node.AttribCullable|scene_node.AttribMoveable,
		scene_node.WithRenderables(cube(0.5, "lit")),
		scene_node.WithModelMatrix(mgl32.Translate3D(0, 0, 30)),
	)
	root := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithChildren(inside, outside))
	sm.AddSceneNode(root)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())

	assert.Equal(t, common.BoundOverlapPartial, root.VisibleMark())
	assert.Equal(t, common.BoundOverlapYes, inside.VisibleMark())
	assert.Equal(t, common.BoundOverlapNo, outside.VisibleMark())

	marks := sm.Marks(0)
	require.Len(t, marks, 3)
	assert.Same(t, root, marks[0].Node)
	assert.Nil(t, sm.Marks(1))

	last, _ := sink.Last()
	assert.Equal(t, 1, last.NumRenderables())
}

func TestNonCullableNodePassesThrough(t *testing.T) {
	sm, _ := newTestManager(t)
	far := scene_node.NewSceneNode(scene_node.AttribCullable|scene_node.AttribMoveable,
		scene_node.WithRenderables(cube(0.5, "lit")),
		scene_node.WithModelMatrix(mgl32.Translate3D(0, 0, 30)),
	)
	group := scene_node.NewSceneNode(0, scene_node.WithRenderables(cube(0.5, "hud")), scene_node.WithChildren(far))
	sm.AddSceneNode(group)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())

	assert.Equal(t, common.BoundOverlapYes, group.VisibleMark())
	assert.Equal(t, common.BoundOverlapNo, far.VisibleMark())
}

func TestSmallObjectThreshold(t *testing.T) {
	sm, _ := newTestManager(t, WithSmallObjectThreshold(0.01))
	tiny := scene_node.NewSceneNode(scene_node.AttribCullable|scene_node.AttribMoveable,
		scene_node.WithRenderables(cube(0.05, "lit")),
		scene_node.WithModelMatrix(mgl32.Translate3D(0, 0, -40)),
	)
	big := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(1, "lit")))
	sm.AddSceneNode(tiny)
	sm.AddSceneNode(big)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())
	assert.Equal(t, common.BoundOverlapNo, tiny.VisibleMark())
	assert.NotEqual(t, common.BoundOverlapNo, big.VisibleMark())

	sm.SetSmallObjectThreshold(0)
	require.NoError(t, sm.Update())
	assert.NotEqual(t, common.BoundOverlapNo, tiny.VisibleMark())
}

func TestInvisibleNodesAreNotSubmitted(t *testing.T) {
	sm, sink := newTestManager(t)
	n := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(1, "lit")))
	n.SetVisible(false)
	sm.AddSceneNode(n)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())
	last, _ := sink.Last()
	assert.Zero(t, last.NumRenderables())
}

func TestLazyExpansionRegistersChildren(t *testing.T) {
	sm, sink := newTestManager(t)
	composite := renderable.NewMesh(renderable.WithSubrenderables(
		readyBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 0}, "part"),
		readyBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, "part"),
	))
	n := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(composite))
	sm.AddSceneNode(n)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())
	assert.Equal(t, 1, sm.NumSceneNodes())
	last, _ := sink.Last()
	assert.Zero(t, last.NumRenderables())

	composite.SetHWResourceReady(true)
	require.NoError(t, sm.Update())
	assert.Equal(t, 3, sm.NumSceneNodes())
	assert.Equal(t, 2, n.NumChildren())
	last, _ = sink.Last()
	require.Len(t, last.Batches, 1)
	assert.Equal(t, "part", last.Batches[0].Technique)
	assert.Len(t, last.Batches[0].Renderables, 2)

	require.NoError(t, sm.Update())
	assert.Equal(t, 3, sm.NumSceneNodes())
}

func TestOverlayNodesFlushLast(t *testing.T) {
	sm, sink := newTestManager(t)
	overlay := scene_node.NewSceneNode(scene_node.AttribOverlay, scene_node.WithRenderables(cube(1, "hud")))
	world := scene_node.NewSceneNode(scene_node.AttribCullable, scene_node.WithRenderables(cube(1, "lit")))
	sm.AddSceneNode(overlay)
	sm.AddSceneNode(world)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	require.NoError(t, sm.Update())
	last, _ := sink.Last()
	require.Len(t, last.Batches, 2)
	assert.Equal(t, "lit", last.Batches[0].Technique)
	assert.Equal(t, "hud", last.Batches[1].Technique)
}

func TestGridVisibilityMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	build := func() []scene_node.Node {
		nodes := make([]scene_node.Node, 200)
		for i := range nodes {
			pos := mgl32.Vec3{
				rng.Float32()*80 - 40,
				rng.Float32()*80 - 40,
				rng.Float32()*80 - 40,
			}
			nodes[i] = scene_node.NewSceneNode(scene_node.AttribCullable|scene_node.AttribMoveable,
				scene_node.WithRenderables(cube(rng.Float32()*2+0.1, "lit")),
				scene_node.WithModelMatrix(mgl32.Translate3D(pos[0], pos[1], pos[2])),
			)
		}
		return nodes
	}
	nodes := build()

	run := func(v Visibility) []common.BoundOverlap {
		sm, _ := newTestManager(t, WithVisibility(v))
		for _, n := range nodes {
			sm.AddSceneNode(n)
		}
		sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 30}, mgl32.Vec3{5, 0, 0}))
		require.NoError(t, sm.Update())

		out := make([]common.BoundOverlap, len(nodes))
		for i, n := range nodes {
			out[i] = n.VisibleMark()
		}
		return out
	}

	brute := run(NewBruteForceVisibility())
	grid := run(NewGridVisibility(10))

	visible := 0
	for i := range nodes {
		assert.Equal(t, brute[i] == common.BoundOverlapNo, grid[i] == common.BoundOverlapNo, "node %d", i)
		if brute[i] != common.BoundOverlapNo {
			visible++
		}
	}
	assert.Positive(t, visible)
	assert.Less(t, visible, len(nodes))
	assert.Panics(t, func() { NewGridVisibility(0) })
}

func TestStandaloneVisibilityQueries(t *testing.T) {
	sm, _ := newTestManager(t)
	box := common.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, common.BoundOverlapYes, sm.AABBVisible(box))

	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))
	assert.Equal(t, common.BoundOverlapYes, sm.AABBVisible(box))
	assert.Equal(t, common.BoundOverlapYes, sm.SphereVisible(common.SphereFromAABB(box)))
	assert.Equal(t, common.BoundOverlapYes, sm.OBBVisible(common.OBBFromAABB(box, mgl32.Ident4())))

	behind := common.NewAABB(mgl32.Vec3{-1, -1, 20}, mgl32.Vec3{1, 1, 22})
	assert.Equal(t, common.BoundOverlapNo, sm.AABBVisible(behind))

	other := lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	assert.NotEqual(t, common.BoundOverlapNo, sm.FrustumVisible(other.Frustum()))
}

func TestSuspendStopsBackgroundUpdates(t *testing.T) {
	ticks := make(chan time.Time, 16)
	sm, _ := newTestManager(t, WithTickSource(ticks))

	var calls atomic.Int32
	sm.AddSceneNode(scene_node.NewSceneNode(0, scene_node.WithSubThreadUpdate(
		scene_node.UpdateFunc(func(scene_node.Node, float32, float32) { calls.Add(1) }),
	)))
	sm.Start()

	ticks <- time.Now()
	require.Eventually(t, func() bool { return sm.BackgroundTicks() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	sm.Suspend()
	assert.True(t, sm.Suspended())
	before := calls.Load()
	for range 5 {
		ticks <- time.Now()
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, calls.Load())

	// Foreground frames keep running while suspended.
	require.NoError(t, sm.Update())

	sm.Resume()
	require.Eventually(t, func() bool { return calls.Load() > before }, time.Second, time.Millisecond)
}

func TestBackgroundCommandsRegisterNodesConcurrently(t *testing.T) {
	const roots, perRoot = 8, 200
	ticks := make(chan time.Time, 1)
	sm, _ := newTestManager(t, WithTickSource(ticks), WithWorkers(4))

	for range roots {
		sm.AddSceneNode(scene_node.NewSceneNode(0, scene_node.WithSubThreadUpdate(
			scene_node.UpdateFunc(func(scene_node.Node, float32, float32) {
				for range perRoot {
					sm.AddSceneNodeLocked(scene_node.NewSceneNode(0))
				}
			}),
		)))
	}
	sm.Start()

	ticks <- time.Now()
	require.Eventually(t, func() bool { return sm.BackgroundTicks() == 1 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, roots+roots*perRoot, sm.NumSceneNodes())
}

func TestMainThreadCommandCallsBackIntoManager(t *testing.T) {
	sm, sink := newTestManager(t)
	sm.AddCamera(lookingAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}))

	var once sync.Once
	var seen atomic.Int32
	added := scene_node.NewSceneNode(scene_node.AttribCullable,
		scene_node.WithRenderables(cube(1, "opaque")))
	sm.AddSceneNode(scene_node.NewSceneNode(0, scene_node.WithMainThreadUpdate(
		scene_node.UpdateFunc(func(scene_node.Node, float32, float32) {
			seen.Store(int32(sm.NumSceneNodes()))
			_ = sm.SmallObjectThreshold()
			once.Do(func() { added.AddToSceneManager(sm) })
		}),
	)))

	done := make(chan error, 1)
	go func() { done <- sm.Update() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Update did not return")
	}

	assert.Equal(t, int32(1), seen.Load())
	assert.Equal(t, 2, sm.NumSceneNodes())

	require.NoError(t, sm.Update())
	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, 1, last.NumRenderables())
}

func TestBackgroundTickPassesElapse(t *testing.T) {
	ticks := make(chan time.Time, 1)
	sm, _ := newTestManager(t, WithTickSource(ticks), WithSceneUpdateElapse(0.5))

	var got atomic.Value
	child := scene_node.NewSceneNode(0, scene_node.WithSubThreadUpdate(
		scene_node.UpdateFunc(func(_ scene_node.Node, _, elapsed float32) { got.Store(elapsed) }),
	))
	sm.AddSceneNode(scene_node.NewSceneNode(0, scene_node.WithChildren(child)))
	sm.Start()
	sm.Start()

	ticks <- time.Now()
	require.Eventually(t, func() bool { return got.Load() != nil }, time.Second, time.Millisecond)
	assert.Equal(t, float32(0.5), got.Load())
}

func TestUpdateAdvancesAppTime(t *testing.T) {
	sm, _ := newTestManager(t, WithSceneUpdateElapse(0.25))
	require.NoError(t, sm.Update())
	require.NoError(t, sm.Update())
	assert.InDelta(t, 0.5, float64(sm.AppTime()), 1e-6)

	base := time.Unix(100, 0)
	now := base
	wall, _ := newTestManager(t, WithSceneUpdateElapse(0), WithClock(func() time.Time { return now }))
	require.NoError(t, wall.Update())
	now = base.Add(2 * time.Second)
	require.NoError(t, wall.Update())
	assert.InDelta(t, 2.0, float64(wall.AppTime()), 1e-6)
}

func TestClosedManagerRejectsWork(t *testing.T) {
	sm, _ := newTestManager(t)
	sm.AddSceneNode(scene_node.NewSceneNode(0))
	sm.Start()

	require.NoError(t, sm.Close())
	require.NoError(t, sm.Close())
	assert.ErrorIs(t, sm.Update(), ErrClosed)
	assert.ErrorIs(t, sm.Flush(0), ErrClosed)
	assert.Zero(t, sm.NumSceneNodes())
	sm.Start()
}

func TestFrameStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "flush", StateFlush.String())
	assert.Equal(t, "unknown", FrameState(99).String())
}
