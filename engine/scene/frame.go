package scene

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
)

// cullContext carries one camera's culling inputs and collects its marks.
type cullContext struct {
	frustum   common.Frustum
	viewDir   mgl32.Vec3
	eyePos    mgl32.Vec3
	viewProj  mgl32.Mat4
	threshold float32

	marks   []NodeMark
	overlay []NodeMark
}

func (c *cullContext) record(n scene_node.Node, mark common.BoundOverlap) {
	if n.Attrib().Has(scene_node.AttribOverlay) {
		c.overlay = append(c.overlay, NodeMark{Node: n, Mark: mark})
		return
	}
	c.marks = append(c.marks, NodeMark{Node: n, Mark: mark})
}

func (s *sceneManager) Update() error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if s.closed {
		return ErrClosed
	}

	elapsed := s.advanceFrameClock()

	s.setState(StateForegroundPropagate)
	s.propagate(s.appTime, elapsed)

	s.setState(StateCull)
	s.urt++
	s.cull()

	return s.flush(s.urt)
}

// advanceFrameClock moves app time forward by the fixed step, or by wall-clock time when
// no step is set, and returns the step taken. The caller must hold tickMu.
func (s *sceneManager) advanceFrameClock() float32 {
	step := s.SceneUpdateElapse()
	now := s.now()
	if step <= 0 {
		if !s.lastFrame.IsZero() {
			step = float32(now.Sub(s.lastFrame).Seconds())
		}
	}
	s.lastFrame = now
	s.appTime += step
	return step
}

// propagate runs main-thread updates and refreshes world matrices top-down from every root.
// Roots are snapshotted under mu and the traversal runs without it, so main-thread commands
// and lazy expansion may call back into the registry.
func (s *sceneManager) propagate(appTime, elapsed float32) {
	s.mu.Lock()
	roots := s.rootsLocked()
	s.mu.Unlock()

	visited := make(map[scene_node.Node]struct{})
	for _, root := range roots {
		root.Traverse(func(n scene_node.Node) bool {
			if _, ok := visited[n]; ok {
				return false
			}
			visited[n] = struct{}{}
			if n.MainThreadUpdate(s, appTime, elapsed) {
				s.logger.Debug("expanded renderables", "node", n.Name(), "children", n.NumChildren())
			}
			n.UpdateAbsModelMatrix()
			return true
		})
	}
}

// cull rebuilds the per-camera marks for the current frame. The caller must hold tickMu.
func (s *sceneManager) cull() {
	s.mu.Lock()
	cameras := slices.Clone(s.cameras)
	roots := s.rootsLocked()
	threshold := s.smallObjThreshold
	s.mu.Unlock()

	s.culled = cameras
	s.marks = make([][]NodeMark, len(cameras))
	for i, cam := range cameras {
		c := &cullContext{
			frustum:   cam.Frustum(),
			viewDir:   cam.ViewDir(),
			eyePos:    cam.EyePos(),
			viewProj:  cam.ViewProjectionMatrix(),
			threshold: threshold,
		}

		s.mu.Lock()
		f := c.frustum
		s.activeFrustum = &f
		s.mu.Unlock()

		kept := make(map[scene_node.Node]struct{}, len(roots))
		for _, n := range s.visibility.ClipScene(c.frustum, roots) {
			kept[n] = struct{}{}
		}
		for _, root := range roots {
			inherited := common.BoundOverlapPartial
			if _, ok := kept[root]; !ok {
				inherited = common.BoundOverlapNo
			}
			s.visibleTest(c, root, inherited)
		}
		s.marks[i] = append(c.marks, c.overlay...)
	}
}

func (s *sceneManager) VisibleTestFromParent(node scene_node.Node, viewDir, eyePos mgl32.Vec3, viewProj mgl32.Mat4) common.BoundOverlap {
	c := &cullContext{
		frustum:   common.ExtractFrustum(viewProj),
		viewDir:   viewDir,
		eyePos:    eyePos,
		viewProj:  viewProj,
		threshold: s.SmallObjectThreshold(),
	}
	return s.visibleTest(c, node, common.BoundOverlapPartial)
}

// visibleTest marks n and its subtree. inherited is No or Yes when an ancestor already
// settled the subtree, and Partial when n must be tested itself.
func (s *sceneManager) visibleTest(c *cullContext, n scene_node.Node, inherited common.BoundOverlap) common.BoundOverlap {
	mark, passOn := inherited, inherited
	if inherited == common.BoundOverlapPartial {
		if tested, ok := s.testNode(c, n); ok {
			mark, passOn = tested, tested
		} else {
			mark = common.BoundOverlapYes
		}
	}

	n.SetVisibleMark(mark)
	c.record(n, mark)
	for _, child := range n.Children() {
		s.visibleTest(c, child, passOn)
	}
	return mark
}

// testNode classifies n's world bound. ok is false when n is not cullable or has no
// valid bound to test.
func (s *sceneManager) testNode(c *cullContext, n scene_node.Node) (common.BoundOverlap, bool) {
	if !n.HasBound() || !n.Attrib().Has(scene_node.AttribCullable) {
		return common.BoundOverlapYes, false
	}
	ws := n.PosBoundWS()
	if ws.IsEmpty() {
		return common.BoundOverlapYes, false
	}

	s.boundTests++
	mark := s.visibility.AABBVisible(c.frustum, ws)
	if mark != common.BoundOverlapNo && s.tooSmall(c, ws) {
		return common.BoundOverlapNo, true
	}
	return mark, true
}

// tooSmall reports whether ws covers less of the viewport than the threshold. Bounds
// around or behind the eye are never too small.
func (s *sceneManager) tooSmall(c *cullContext, ws common.AABB) bool {
	if c.threshold <= 0 || ws.Contains(c.eyePos) {
		return false
	}
	sphere := common.SphereFromAABB(ws)
	if c.viewDir.Dot(sphere.Center.Sub(c.eyePos)) <= sphere.Radius {
		return false
	}
	area, ok := common.ProjectedArea(ws, c.viewProj)
	return ok && area < c.threshold
}

func (s *sceneManager) Flush(urt uint32) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.flush(urt)
}

// flush buckets and submits every culled camera. The caller must hold tickMu.
func (s *sceneManager) flush(urt uint32) error {
	if urt != s.urt {
		return fmt.Errorf("%w: got %d, current %d", ErrStaleUpdate, urt, s.urt)
	}
	defer s.setState(StateIdle)

	var stats FrameStats
	for i, cam := range s.culled {
		s.setState(StateBucket)
		s.resetQueue()
		for _, m := range s.marks[i] {
			if m.Mark == common.BoundOverlapNo || !m.Node.Visible() {
				continue
			}
			queued := false
			for j := 0; j < m.Node.NumRenderables(); j++ {
				r := m.Node.Renderable(j)
				// Containers are drawn through the child nodes their parts expand into.
				if !r.HWResourceReady() || r.NumSubrenderables() > 0 {
					continue
				}
				s.enqueue(r)
				stats.RenderablesRendered++
				stats.PrimitivesRendered += r.NumPrimitives()
				stats.VerticesRendered += r.NumVertices()
				queued = true
			}
			if queued {
				stats.ObjectsRendered++
			}
		}

		s.setState(StateFlush)
		sub, err := s.sink.Submit(renderer.Submission{Token: urt, Camera: cam, Batches: s.queue})
		if err != nil {
			s.logger.Error("submission failed", "camera", i, "token", urt, "error", err)
			return fmt.Errorf("scene: flush camera %d: %w", i, err)
		}
		stats.DrawCalls += sub.DrawCalls
		stats.DispatchCalls += sub.DispatchCalls
	}

	s.statsMu.Lock()
	s.stats = stats
	s.statsMu.Unlock()
	return nil
}

func (s *sceneManager) resetQueue() {
	s.queue = nil
	clear(s.queueIndex)
}

// enqueue appends r to its technique's bucket, opening a bucket on first encounter.
func (s *sceneManager) enqueue(r renderable.Renderable) {
	t := r.Technique()
	i, ok := s.queueIndex[t]
	if !ok {
		i = len(s.queue)
		s.queueIndex[t] = i
		s.queue = append(s.queue, renderer.Batch{Technique: t})
	}
	s.queue[i].Renderables = append(s.queue[i].Renderables, r)
}
