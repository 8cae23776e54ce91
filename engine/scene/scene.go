package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrStaleUpdate is returned by Flush when the token does not belong to the latest frame.
	ErrStaleUpdate = errors.New("scene: stale update request token")

	// ErrClosed is returned by operations on a closed SceneManager.
	ErrClosed = errors.New("scene: scene manager is closed")
)

// FrameState is the phase a SceneManager is currently in.
type FrameState int32

const (
	StateIdle FrameState = iota
	StateBackgroundUpdate
	StateForegroundPropagate
	StateCull
	StateBucket
	StateFlush
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBackgroundUpdate:
		return "background_update"
	case StateForegroundPropagate:
		return "foreground_propagate"
	case StateCull:
		return "cull"
	case StateBucket:
		return "bucket"
	case StateFlush:
		return "flush"
	}
	return "unknown"
}

// FrameStats is a snapshot of the counters produced by the most recent flush.
type FrameStats struct {
	ObjectsRendered     uint32
	RenderablesRendered uint32
	PrimitivesRendered  uint32
	VerticesRendered    uint32
	DrawCalls           uint32
	DispatchCalls       uint32
}

// NodeMark pairs a node with the visibility outcome it received in one culling pass.
type NodeMark struct {
	Node scene_node.Node
	Mark common.BoundOverlap
}

// SceneManager owns the camera, light and scene node registries and runs the frame:
// background updates, transform propagation, culling, bucketing and submission.
//
// Registration methods with the Locked suffix take the registry mutex and may be called
// from background commands running on the worker pool and from main-thread callbacks.
// The plain variants serve main-thread call sites and serialise on the same mutex.
type SceneManager interface {
	scene_node.Registrar

	// Start launches the background update goroutine. Calling Start more than once, or after
	// Close, has no effect.
	Start()

	// Suspend pauses the background update goroutine. It waits for an in-flight tick to
	// finish, and no background command runs until Resume is called.
	Suspend()

	// Resume lets the background update goroutine run again.
	Resume()

	// Suspended reports whether background updates are paused.
	Suspended() bool

	// Close stops the background goroutine, waits for it, stops the worker pool and
	// releases the registries. Calling Close again is a no-op.
	//
	// Returns:
	//   - error: always nil; present so the manager satisfies io.Closer
	Close() error

	// State returns the phase the manager is in.
	State() FrameState

	// SmallObjectThreshold returns the projected screen fraction below which bounded
	// nodes are culled. Zero disables size culling.
	SmallObjectThreshold() float32

	// SetSmallObjectThreshold sets the projected screen fraction below which bounded
	// nodes are culled.
	//
	// Parameters:
	//   - area: fraction of the viewport in [0, 1]; zero disables size culling
	SetSmallObjectThreshold(area float32)

	// SceneUpdateElapse returns the fixed time step applied per frame and per background tick.
	// Zero means wall-clock time is used.
	SceneUpdateElapse() float32

	// SetSceneUpdateElapse sets the fixed time step applied per frame and per background tick.
	//
	// Parameters:
	//   - seconds: the step in seconds; zero or negative selects wall-clock time
	SetSceneUpdateElapse(seconds float32)

	// AddCamera appends a camera. Every camera is culled and flushed each frame in order.
	AddCamera(cam camera.Camera)

	// DelCamera removes the first occurrence of cam. Absent cameras are ignored.
	DelCamera(cam camera.Camera)

	// NumCameras returns the number of registered cameras.
	NumCameras() int

	// Camera returns the camera at index i. Panics when i is out of range.
	Camera(i int) camera.Camera

	// ClearCameras removes every camera.
	ClearCameras()

	// AddLight appends a light.
	AddLight(l light.Light)

	// DelLight removes the first occurrence of l. Absent lights are ignored.
	DelLight(l light.Light)

	// NumLights returns the number of registered lights.
	NumLights() int

	// Light returns the light at index i. Panics when i is out of range.
	Light(i int) light.Light

	// ClearLights removes every light.
	ClearLights()

	// NumSceneNodes returns the number of registered scene nodes, duplicates included.
	NumSceneNodes() int

	// SceneNode returns the registered node at index i in insertion order.
	// Panics when i is out of range.
	SceneNode(i int) scene_node.Node

	// ClearSceneNodes removes every scene node.
	ClearSceneNodes()

	// Visibility returns the culling strategy selected at construction.
	Visibility() Visibility

	// AABBVisible classifies a world-space box against the frustum of the camera most
	// recently culled, or the first camera if none has been. Returns Yes without cameras.
	AABBVisible(b common.AABB) common.BoundOverlap

	// OBBVisible is AABBVisible for an oriented box.
	OBBVisible(o common.OBB) common.BoundOverlap

	// SphereVisible is AABBVisible for a sphere.
	SphereVisible(s common.Sphere) common.BoundOverlap

	// FrustumVisible is AABBVisible for a frustum.
	FrustumVisible(f common.Frustum) common.BoundOverlap

	// VisibleTestFromParent tests node and its subtree against the frustum of viewProj,
	// writing each node's visibility mark. A node outside the frustum settles its whole
	// subtree as No, a node fully inside settles it as Yes, and a partial overlap tests
	// each child on its own. Nodes that are not cullable, or have no valid bound, are
	// visible and hand their own inherited outcome to their children.
	//
	// Parameters:
	//   - node: the subtree root; its world bounds must be current
	//   - viewDir: the camera's unit view direction
	//   - eyePos: the camera's world-space position
	//   - viewProj: the camera's view-projection matrix
	//
	// Returns:
	//   - common.BoundOverlap: the mark assigned to node
	VisibleTestFromParent(node scene_node.Node, viewDir, eyePos mgl32.Vec3, viewProj mgl32.Mat4) common.BoundOverlap

	// Update runs one frame: it waits for any in-flight background tick, advances time,
	// runs main-thread updates and transform propagation over every registered root,
	// culls every camera and flushes the result to the sink.
	//
	// Returns:
	//   - error: ErrClosed, or the wrapped sink error that aborted the flush
	Update() error

	// Flush buckets the visible drawables of the current frame by technique and submits
	// one submission per camera. Buckets are ordered by first encounter.
	//
	// Parameters:
	//   - urt: the update request token returned by UpdateRequestToken
	//
	// Returns:
	//   - error: ErrStaleUpdate if urt is not the current token, or a wrapped sink error
	Flush(urt uint32) error

	// UpdateRequestToken returns the token of the most recent frame.
	UpdateRequestToken() uint32

	// Marks returns the visibility outcomes recorded for camera index i in the current frame,
	// in test order. Returns nil when the camera was not culled.
	Marks(i int) []NodeMark

	// AppTime returns the accumulated application time in seconds.
	AppTime() float32

	// BackgroundTicks returns how many background ticks have completed.
	BackgroundTicks() uint64

	// FrameStats returns the counters of the most recent flush.
	FrameStats() FrameStats

	NumObjectsRendered() uint32
	NumRenderablesRendered() uint32
	NumPrimitivesRendered() uint32
	NumVerticesRendered() uint32
	NumDrawCalls() uint32
	NumDispatchCalls() uint32
}

type sceneManager struct {
	// mu guards the registries and settings.
	mu *sync.Mutex

	cameras    []camera.Camera
	lights     []light.Light
	sceneNodes []scene_node.Node

	smallObjThreshold float32
	updateElapse      float32
	activeFrustum     *common.Frustum

	// tickMu serialises background ticks against Update and Flush. resumed waits on it.
	tickMu    *sync.Mutex
	resumed   *sync.Cond
	suspended bool
	closed    bool

	appTime    float32
	lastFrame  time.Time
	lastTick   time.Time
	urt        uint32
	culled     []camera.Camera
	marks      [][]NodeMark
	queue      []renderer.Batch
	queueIndex map[string]int
	boundTests int

	statsMu *sync.RWMutex
	stats   FrameStats

	state      atomic.Int32
	bgTicks    atomic.Uint64
	visibility Visibility
	sink       renderer.Sink
	logger     *slog.Logger
	now        func() time.Time

	ticks        <-chan time.Time
	tickInterval time.Duration
	workers      int
	pool         worker.DynamicWorkerPool

	quit      chan struct{}
	startOnce sync.Once
	wg        sync.WaitGroup
}

// Ensure sceneManager implements SceneManager interface.
var _ SceneManager = &sceneManager{}

// NewSceneManager creates a SceneManager that submits to sink. The background goroutine
// is not running until Start is called. Panics if sink is nil.
//
// Parameters:
//   - sink: the renderer sink receiving one submission per camera per frame
//   - options: functional options to configure the manager
//
// Returns:
//   - SceneManager: the new manager
func NewSceneManager(sink renderer.Sink, options ...SceneManagerBuilderOption) SceneManager {
	if sink == nil {
		panic("scene: NewSceneManager requires a non-nil Sink")
	}

	s := &sceneManager{
		mu:           &sync.Mutex{},
		tickMu:       &sync.Mutex{},
		statsMu:      &sync.RWMutex{},
		queueIndex:   make(map[string]int),
		visibility:   NewBruteForceVisibility(),
		sink:         sink,
		logger:       slog.Default(),
		now:          time.Now,
		tickInterval: time.Second / 60,
		workers:      max(runtime.NumCPU()-1, 1),
		quit:         make(chan struct{}),
	}
	s.resumed = sync.NewCond(s.tickMu)

	for _, option := range options {
		option(s)
	}

	// Queue size of 256 leaves headroom for scenes with many independent roots.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *sceneManager) State() FrameState {
	return FrameState(s.state.Load())
}

func (s *sceneManager) setState(st FrameState) {
	s.state.Store(int32(st))
}

func (s *sceneManager) SmallObjectThreshold() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smallObjThreshold
}

func (s *sceneManager) SetSmallObjectThreshold(area float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.smallObjThreshold = max(area, 0)
}

func (s *sceneManager) SceneUpdateElapse() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateElapse
}

func (s *sceneManager) SetSceneUpdateElapse(seconds float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateElapse = max(seconds, 0)
}

func (s *sceneManager) AddCamera(cam camera.Camera) {
	if cam == nil {
		panic("scene: AddCamera requires a non-nil Camera")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameras = append(s.cameras, cam)
}

func (s *sceneManager) DelCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.cameras, cam); i >= 0 {
		s.cameras = slices.Delete(s.cameras, i, i+1)
	}
}

func (s *sceneManager) NumCameras() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cameras)
}

func (s *sceneManager) Camera(i int) camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.cameras) {
		panic(fmt.Sprintf("scene: Camera index %d out of range [0, %d)", i, len(s.cameras)))
	}
	return s.cameras[i]
}

func (s *sceneManager) ClearCameras() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameras = nil
	s.activeFrustum = nil
}

func (s *sceneManager) AddLight(l light.Light) {
	if l == nil {
		panic("scene: AddLight requires a non-nil Light")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *sceneManager) DelLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *sceneManager) NumLights() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lights)
}

func (s *sceneManager) Light(i int) light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.lights) {
		panic(fmt.Sprintf("scene: Light index %d out of range [0, %d)", i, len(s.lights)))
	}
	return s.lights[i]
}

func (s *sceneManager) ClearLights() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = nil
}

func (s *sceneManager) AddSceneNode(n scene_node.Node) {
	s.AddSceneNodeLocked(n)
}

func (s *sceneManager) AddSceneNodeLocked(n scene_node.Node) {
	if n == nil {
		panic("scene: AddSceneNode requires a non-nil Node")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSceneNodeNoLock(n)
}

func (s *sceneManager) DelSceneNode(n scene_node.Node) {
	s.DelSceneNodeLocked(n)
}

func (s *sceneManager) DelSceneNodeLocked(n scene_node.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delSceneNodeNoLock(n)
}

// addSceneNodeNoLock appends n. The caller must hold mu.
func (s *sceneManager) addSceneNodeNoLock(n scene_node.Node) {
	s.sceneNodes = append(s.sceneNodes, n)
}

// delSceneNodeNoLock removes the first entry equal to n. The caller must hold mu.
func (s *sceneManager) delSceneNodeNoLock(n scene_node.Node) {
	if i := slices.Index(s.sceneNodes, n); i >= 0 {
		s.sceneNodes = slices.Delete(s.sceneNodes, i, i+1)
	}
}

func (s *sceneManager) NumSceneNodes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sceneNodes)
}

func (s *sceneManager) SceneNode(i int) scene_node.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.sceneNodes) {
		panic(fmt.Sprintf("scene: SceneNode index %d out of range [0, %d)", i, len(s.sceneNodes)))
	}
	return s.sceneNodes[i]
}

func (s *sceneManager) ClearSceneNodes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sceneNodes = nil
}

// rootsLocked returns the registered nodes that have no registered ancestor, each once,
// in registration order. The caller must hold mu.
func (s *sceneManager) rootsLocked() []scene_node.Node {
	registered := make(map[scene_node.Node]struct{}, len(s.sceneNodes))
	for _, n := range s.sceneNodes {
		registered[n] = struct{}{}
	}

	roots := make([]scene_node.Node, 0, len(s.sceneNodes))
	seen := make(map[scene_node.Node]struct{}, len(s.sceneNodes))
	for _, n := range s.sceneNodes {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if hasRegisteredAncestor(n, registered) {
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

func hasRegisteredAncestor(n scene_node.Node, registered map[scene_node.Node]struct{}) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := registered[p]; ok {
			return true
		}
	}
	return false
}

func (s *sceneManager) Visibility() Visibility {
	return s.visibility
}

// frustumForQuery returns the frustum used by the standalone visibility queries.
func (s *sceneManager) frustumForQuery() (common.Frustum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeFrustum != nil {
		return *s.activeFrustum, true
	}
	if len(s.cameras) > 0 {
		return s.cameras[0].Frustum(), true
	}
	return common.Frustum{}, false
}

func (s *sceneManager) AABBVisible(b common.AABB) common.BoundOverlap {
	f, ok := s.frustumForQuery()
	if !ok {
		return common.BoundOverlapYes
	}
	return s.visibility.AABBVisible(f, b)
}

func (s *sceneManager) OBBVisible(o common.OBB) common.BoundOverlap {
	f, ok := s.frustumForQuery()
	if !ok {
		return common.BoundOverlapYes
	}
	return s.visibility.OBBVisible(f, o)
}

func (s *sceneManager) SphereVisible(sp common.Sphere) common.BoundOverlap {
	f, ok := s.frustumForQuery()
	if !ok {
		return common.BoundOverlapYes
	}
	return s.visibility.SphereVisible(f, sp)
}

func (s *sceneManager) FrustumVisible(o common.Frustum) common.BoundOverlap {
	f, ok := s.frustumForQuery()
	if !ok {
		return common.BoundOverlapYes
	}
	return s.visibility.FrustumVisible(f, o)
}

func (s *sceneManager) UpdateRequestToken() uint32 {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.urt
}

func (s *sceneManager) Marks(i int) []NodeMark {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if i < 0 || i >= len(s.marks) {
		return nil
	}
	return slices.Clone(s.marks[i])
}

func (s *sceneManager) AppTime() float32 {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.appTime
}

func (s *sceneManager) BackgroundTicks() uint64 {
	return s.bgTicks.Load()
}

func (s *sceneManager) FrameStats() FrameStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

func (s *sceneManager) NumObjectsRendered() uint32     { return s.FrameStats().ObjectsRendered }
func (s *sceneManager) NumRenderablesRendered() uint32 { return s.FrameStats().RenderablesRendered }
func (s *sceneManager) NumPrimitivesRendered() uint32  { return s.FrameStats().PrimitivesRendered }
func (s *sceneManager) NumVerticesRendered() uint32    { return s.FrameStats().VerticesRendered }
func (s *sceneManager) NumDrawCalls() uint32           { return s.FrameStats().DrawCalls }
func (s *sceneManager) NumDispatchCalls() uint32       { return s.FrameStats().DispatchCalls }
