package light

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source. The type selects the proxy mesh a
// light is visualized with; lights never take part in culling.
type LightType int

const (
	LightTypeAmbient LightType = iota
	LightTypeDirectional
	LightTypePoint
	LightTypeSpot
	LightTypeSphereArea
	LightTypeTubeArea
)

// String returns the light type's name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeSphereArea:
		return "sphere_area"
	case LightTypeTubeArea:
		return "tube_area"
	}
	return "unknown"
}

// Light is the geometric view of a light source the scene graph consumes: where it is,
// where it points and how wide its cone is.
// Thread-safe for concurrent access.
type Light interface {
	Type() LightType
	Position() mgl32.Vec3

	// Direction returns the unit emission direction, or zero when unset.
	Direction() mgl32.Vec3

	// Rotation returns the rotation taking -Z onto Direction.
	Rotation() mgl32.Quat

	Color() mgl32.Vec3
	Range() float32

	// InnerCone and OuterCone return the cosines of the spot cone half-angles.
	InnerCone() float32
	OuterCone() float32

	SetPosition(pos mgl32.Vec3)
	SetDirection(dir mgl32.Vec3)
}

type light struct {
	mu *sync.RWMutex

	kind      LightType
	position  mgl32.Vec3
	direction mgl32.Vec3
	color     mgl32.Vec3
	reach     float32
	innerCos  float32
	outerCos  float32
}

var _ Light = &light{}

// NewLight creates a light of the given type. It points down -Y with a white colour,
// a range of 10 and a 25/35 degree spot cone until options say otherwise.
//
// Parameters:
//   - kind: the light type
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(kind LightType, options ...LightBuilderOption) Light {
	l := &light{
		mu:        &sync.RWMutex{},
		kind:      kind,
		direction: mgl32.Vec3{0, -1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		reach:     10,
		innerCos:  cosDeg(25),
		outerCos:  cosDeg(35),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *light) Type() LightType {
	return l.kind
}

func (l *light) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *light) Direction() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.direction
}

func (l *light) Rotation() mgl32.Quat {
	dir := l.Direction()
	if dir.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, dir)
}

func (l *light) Color() mgl32.Vec3 {
	return l.color
}

func (l *light) Range() float32 {
	return l.reach
}

func (l *light) InnerCone() float32 {
	return l.innerCos
}

func (l *light) OuterCone() float32 {
	return l.outerCos
}

func (l *light) SetPosition(pos mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = pos
}

func (l *light) SetDirection(dir mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = unit(dir)
}

func unit(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}
