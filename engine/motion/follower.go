package motion

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// Follower is a background update command that springs a node's translation toward a target.
// The node's rotation and scale are left untouched.
type Follower interface {
	scene_node.UpdateCommand

	// Target returns the position the follower is moving toward.
	Target() mgl32.Vec3

	// SetTarget changes the position the follower is moving toward. Safe to call while
	// the command runs on the background goroutine.
	//
	// Parameters:
	//   - target: the new world-space target
	SetTarget(target mgl32.Vec3)

	// Position returns the current spring position.
	Position() mgl32.Vec3

	// Velocity returns the current spring velocity.
	Velocity() mgl32.Vec3
}

type follower struct {
	mu *sync.Mutex

	frequency float64
	damping   float64
	step      float64
	spring    harmonica.Spring

	pos    [3]float64
	vel    [3]float64
	target [3]float64
}

var _ Follower = &follower{}

// NewFollower creates a Follower resting at start.
//
// Parameters:
//   - start: the initial position and target
//   - options: functional options to configure the spring
//
// Returns:
//   - Follower: the new follower
func NewFollower(start mgl32.Vec3, options ...FollowerBuilderOption) Follower {
	f := &follower{
		mu:        &sync.Mutex{},
		frequency: 6.0,
		damping:   1.0,
		step:      harmonica.FPS(60),
	}
	for i := range 3 {
		f.pos[i] = float64(start[i])
		f.target[i] = float64(start[i])
	}
	for _, option := range options {
		option(f)
	}
	f.spring = harmonica.NewSpring(f.step, f.frequency, f.damping)
	return f
}

func (f *follower) Execute(n scene_node.Node, _, elapsed float32) {
	f.mu.Lock()
	f.retime(float64(elapsed))
	for i := range 3 {
		f.pos[i], f.vel[i] = f.spring.Update(f.pos[i], f.vel[i], f.target[i])
	}
	pos := toVec3(f.pos)
	f.mu.Unlock()

	m := n.ModelMatrix()
	m.SetCol(3, pos.Vec4(1))
	n.SetModelMatrix(m)
}

// retime rebuilds the spring when the frame step changes. Zero keeps the current step.
func (f *follower) retime(elapsed float64) {
	if elapsed <= 0 || elapsed == f.step {
		return
	}
	f.step = elapsed
	f.spring = harmonica.NewSpring(f.step, f.frequency, f.damping)
}

func (f *follower) Target() mgl32.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toVec3(f.target)
}

func (f *follower) SetTarget(target mgl32.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range 3 {
		f.target[i] = float64(target[i])
	}
}

func (f *follower) Position() mgl32.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toVec3(f.pos)
}

func (f *follower) Velocity() mgl32.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toVec3(f.vel)
}

func toVec3(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
