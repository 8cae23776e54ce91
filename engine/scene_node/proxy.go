package scene_node

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/go-gl/mathgl/mgl32"
)

// ProxyMeshFactory resolves a proxy mesh name to a renderable.
type ProxyMeshFactory func(name string) renderable.Renderable

// ProxyTechnique is the technique key used by DefaultProxyMeshFactory.
const ProxyTechnique = "proxy"

// DefaultProxyMeshFactory returns a small ready cube named after the proxy.
func DefaultProxyMeshFactory(name string) renderable.Renderable {
	return renderable.NewCube(0.5,
		renderable.WithName(name),
		renderable.WithTechnique(ProxyTechnique),
		renderable.WithHWResourceReady(true),
	)
}

// LightProxyMeshName returns the proxy mesh name for a light type.
// Panics for a type with no proxy.
//
// Parameters:
//   - t: the light type
//
// Returns:
//   - string: the proxy mesh name
func LightProxyMeshName(t light.LightType) string {
	switch t {
	case light.LightTypeAmbient:
		return "ambient_light_proxy"
	case light.LightTypePoint, light.LightTypeSphereArea:
		return "point_light_proxy"
	case light.LightTypeDirectional:
		return "directional_light_proxy"
	case light.LightTypeSpot:
		return "spot_light_proxy"
	case light.LightTypeTubeArea:
		return "tube_light_proxy"
	}
	panic(fmt.Sprintf("scene_node: no proxy mesh for light type %d", int(t)))
}

// NewLightSourceProxy creates a node that visualizes l. Its main-thread command rebuilds
// the local transform from the light's position and direction every frame; spot lights are
// additionally widened to their outer cone.
//
// Parameters:
//   - l: the light to follow
//   - factory: resolves the proxy mesh, or nil for DefaultProxyMeshFactory
//   - scale: uniform scale applied to the proxy mesh
//
// Returns:
//   - Node: the proxy node
func NewLightSourceProxy(l light.Light, factory ProxyMeshFactory, scale float32) Node {
	if factory == nil {
		factory = DefaultProxyMeshFactory
	}
	name := LightProxyMeshName(l.Type())
	cmd := lightProxyUpdate{light: l, scale: scale}
	n := NewSceneNode(AttribCullable|AttribMoveable|AttribNotCastShadow,
		WithName(name),
		WithRenderables(factory(name)),
		WithMainThreadUpdate(cmd),
	)
	n.SetModelMatrix(cmd.model())
	return n
}

// lightProxyUpdate keeps a proxy node on its light.
type lightProxyUpdate struct {
	light light.Light
	scale float32
}

func (u lightProxyUpdate) Execute(n Node, _, _ float32) {
	n.SetModelMatrix(u.model())
}

func (u lightProxyUpdate) model() mgl32.Mat4 {
	pos := u.light.Position()
	m := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(u.light.Rotation().Mat4())
	if u.light.Type() == light.LightTypeSpot {
		if c := u.light.OuterCone(); c > 0 {
			r := float32(math.Sqrt(float64(1-c*c))) / c
			m = m.Mul4(mgl32.Scale3D(r, r, 1))
		}
	}
	return m.Mul4(mgl32.Scale3D(u.scale, u.scale, u.scale))
}

// NewCameraProxy creates a node that visualizes cam. Its background command places the
// node at the camera's inverse view transform.
//
// Parameters:
//   - cam: the camera to follow
//   - factory: resolves the proxy mesh, or nil for DefaultProxyMeshFactory
//   - scale: uniform scale applied to the proxy mesh
//
// Returns:
//   - Node: the proxy node
func NewCameraProxy(cam camera.Camera, factory ProxyMeshFactory, scale float32) Node {
	if factory == nil {
		factory = DefaultProxyMeshFactory
	}
	return NewSceneNode(AttribCullable|AttribMoveable,
		WithName("camera_proxy"),
		WithRenderables(factory("camera_proxy")),
		WithModelMatrix(cam.InverseViewMatrix().Mul4(mgl32.Scale3D(scale, scale, scale))),
		WithSubThreadUpdate(UpdateFunc(func(n Node, _, _ float32) {
			n.SetModelMatrix(cam.InverseViewMatrix().Mul4(mgl32.Scale3D(scale, scale, scale)))
		})),
	)
}

// NewSkyBox creates an uncullable node for a sky renderable that never casts shadows.
//
// Parameters:
//   - sky: the sky renderable
//
// Returns:
//   - Node: the sky box node
func NewSkyBox(sky renderable.Renderable) Node {
	return NewSceneNode(AttribNotCastShadow, WithName("sky_box"), WithRenderables(sky))
}
