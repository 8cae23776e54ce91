package motion

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowerConvergesOnTarget(t *testing.T) {
	n := scene_node.NewSceneNode(scene_node.AttribMoveable, scene_node.WithModelMatrix(mgl32.Scale3D(2, 2, 2)))
	f := NewFollower(mgl32.Vec3{}, WithFrequency(8), WithDamping(1))
	n.SetSubThreadUpdate(f)

	target := mgl32.Vec3{10, -4, 2}
	f.SetTarget(target)
	assert.Equal(t, target, f.Target())

	prev := target.Len()
	for i := 0; i < 240; i++ {
		n.SubThreadUpdate(0, 1.0/60)
		d := f.Position().Sub(target).Len()
		require.LessOrEqual(t, d, prev+1e-4, "step %d moved away from target", i)
		prev = d
	}

	assert.True(t, f.Position().ApproxEqualThreshold(target, 1e-2))
	assert.Less(t, f.Velocity().Len(), float32(1e-1))

	m := n.ModelMatrix()
	assert.True(t, m.Col(3).Vec3().ApproxEqualThreshold(target, 1e-2))
	assert.InDelta(t, 2.0, float64(m.Col(0).Vec3().Len()), 1e-5)
}

func TestFollowerAtRestStaysPut(t *testing.T) {
	start := mgl32.Vec3{1, 2, 3}
	n := scene_node.NewSceneNode(scene_node.AttribMoveable)
	f := NewFollower(start, WithFPS(30))

	f.Execute(n, 0, 0)
	assert.Equal(t, start, f.Position())
	assert.Equal(t, start, n.ModelMatrix().Col(3).Vec3())
}

func TestSpinnerDecaysVelocity(t *testing.T) {
	n := scene_node.NewSceneNode(scene_node.AttribMoveable)
	s := NewSpinner(60, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1})

	s.ApplyImpulse(0, 0.1, 0)
	assert.InDelta(t, 0.1, float64(s.AngularVelocity()[1]), 1e-6)

	for range 300 {
		s.Execute(n, 0, 0)
	}

	assert.InDelta(t, 0, float64(s.AngularVelocity()[1]), 1e-3)
	yaw := s.Rotation()[1]
	assert.Positive(t, yaw)
	assert.Zero(t, s.Rotation()[0])

	m := n.ModelMatrix()
	assert.True(t, m.Col(3).Vec3().ApproxEqual(mgl32.Vec3{0, 1, 0}))
	assert.True(t, m.ApproxEqualThreshold(mgl32.Translate3D(0, 1, 0).Mul4(mgl32.HomogRotate3DY(yaw)), 1e-5))
}
