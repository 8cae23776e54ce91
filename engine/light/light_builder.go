package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a functional option for configuring a Light.
type LightBuilderOption func(*light)

// WithPosition places the light in world space.
func WithPosition(pos mgl32.Vec3) LightBuilderOption {
	return func(l *light) {
		l.position = pos
	}
}

// WithDirection sets the emission direction; it is normalized.
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *light) {
		l.direction = unit(dir)
	}
}

// WithColor sets the linear RGB colour.
func WithColor(rgb mgl32.Vec3) LightBuilderOption {
	return func(l *light) {
		l.color = rgb
	}
}

// WithRange sets the attenuation distance of point and spot lights.
func WithRange(r float32) LightBuilderOption {
	return func(l *light) {
		l.reach = r
	}
}

// WithSpotCone sets the spot cone half-angles.
//
// Parameters:
//   - innerDeg: inner half-angle in degrees
//   - outerDeg: outer half-angle in degrees; light proxies are widened to this cone
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *light) {
		l.innerCos = cosDeg(innerDeg)
		l.outerCos = cosDeg(outerDeg)
	}
}
