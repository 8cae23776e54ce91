package motion

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// Spinner is a background update command that rotates a node by an angular velocity
// which a critically damped spring decays toward zero. Impulses add to the velocity.
type Spinner interface {
	scene_node.UpdateCommand

	// ApplyImpulse adds angular velocity in radians per step around X, Y and Z.
	ApplyImpulse(pitch, yaw, roll float32)

	// Rotation returns the accumulated pitch, yaw and roll in radians.
	Rotation() mgl32.Vec3

	// AngularVelocity returns the current angular velocity.
	AngularVelocity() mgl32.Vec3
}

type spinAxis struct {
	position float64
	velocity float64
	accel    float64
}

type spinner struct {
	mu     *sync.Mutex
	spring harmonica.Spring
	axes   [3]spinAxis
	origin mgl32.Vec3
	scale  mgl32.Vec3
}

var _ Spinner = &spinner{}

// NewSpinner creates a Spinner that places the node at origin with the given scale.
//
// Parameters:
//   - fps: the step rate the velocity decay is tuned for
//   - origin: the node's translation
//   - scale: the node's scale
//
// Returns:
//   - Spinner: the new spinner
func NewSpinner(fps int, origin, scale mgl32.Vec3) Spinner {
	return &spinner{
		mu:     &sync.Mutex{},
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		origin: origin,
		scale:  scale,
	}
}

func (s *spinner) Execute(n scene_node.Node, _, _ float32) {
	s.mu.Lock()
	for i := range s.axes {
		a := &s.axes[i]
		a.position += a.velocity
		a.velocity, a.accel = s.spring.Update(a.velocity, a.accel, 0)
	}
	rot := s.rotationLocked()
	s.mu.Unlock()

	n.SetModelMatrix(common.BuildModelMatrix(s.origin, rot, s.scale))
}

func (s *spinner) ApplyImpulse(pitch, yaw, roll float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.axes[0].velocity += float64(pitch)
	s.axes[1].velocity += float64(yaw)
	s.axes[2].velocity += float64(roll)
}

func (s *spinner) Rotation() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotationLocked()
}

func (s *spinner) rotationLocked() mgl32.Vec3 {
	return mgl32.Vec3{float32(s.axes[0].position), float32(s.axes[1].position), float32(s.axes[2].position)}
}

func (s *spinner) AngularVelocity() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mgl32.Vec3{float32(s.axes[0].velocity), float32(s.axes[1].velocity), float32(s.axes[2].velocity)}
}
