package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.EyePos())
	assert.True(t, c.ViewDir().ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.True(t, c.ViewMatrix().ApproxEqual(mgl32.Ident4()))
	assert.True(t, c.InverseViewMatrix().ApproxEqual(mgl32.Ident4()))
}

func TestCameraSetLookAt(t *testing.T) {
	c := NewCamera(WithNearFar(1, 50))
	c.SetLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})

	assert.True(t, c.ViewDir().ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.True(t, c.ViewMatrix().Mul4(c.InverseViewMatrix()).ApproxEqualThreshold(mgl32.Ident4(), 1e-5))

	origin := common.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, common.BoundOverlapYes, c.Frustum().IntersectAABB(origin))

	behind := common.NewAABB(mgl32.Vec3{-1, -1, 20}, mgl32.Vec3{1, 1, 22})
	assert.Equal(t, common.BoundOverlapNo, c.Frustum().IntersectAABB(behind))

	vp := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	assert.True(t, vp.ApproxEqual(c.ViewProjectionMatrix()))
}

func TestCameraSettersRefreshFrustum(t *testing.T) {
	c := NewCamera(WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}), WithUp(mgl32.Vec3{0, 1, 0}))
	far := common.NewAABB(mgl32.Vec3{-1, -1, -150}, mgl32.Vec3{1, 1, -140})
	require.Equal(t, common.BoundOverlapNo, c.Frustum().IntersectAABB(far))

	c.SetNearFar(0.1, 500)
	assert.Equal(t, float32(500), c.Far())
	assert.NotEqual(t, common.BoundOverlapNo, c.Frustum().IntersectAABB(far))

	wide := common.NewAABB(mgl32.Vec3{30, -1, -1}, mgl32.Vec3{32, 1, 1})
	assert.Equal(t, common.BoundOverlapNo, c.Frustum().IntersectAABB(wide))
	c.SetFov(mgl32.DegToRad(170))
	assert.NotEqual(t, common.BoundOverlapNo, c.Frustum().IntersectAABB(wide))

	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
	assert.True(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()).ApproxEqual(c.ViewProjectionMatrix()))
}
