package scene_node

// Attrib is a bitmask of node behaviours.
type Attrib uint32

const (
	// AttribCullable marks a node whose bound is tested against camera frusta.
	AttribCullable Attrib = 1 << iota

	// AttribOverlay marks a screen-space node. Overlay nodes never track a bound.
	AttribOverlay

	// AttribMoveable marks a node whose transform changes at runtime.
	AttribMoveable

	// AttribInvisible hides the node from flushing.
	AttribInvisible

	// AttribNotCastShadow hides the node during shadow-map passes.
	AttribNotCastShadow

	// AttribSSS marks a node rendered with subsurface scattering.
	AttribSSS
)

// Has reports whether every bit of a is set.
func (attr Attrib) Has(a Attrib) bool {
	return attr&a == a
}

// tracksBound reports whether a node with this mask carries a bound cache.
func (attr Attrib) tracksBound() bool {
	return !attr.Has(AttribOverlay) && (attr.Has(AttribCullable) || attr.Has(AttribMoveable))
}

// ReadyState is the per-renderable hardware readiness state of a node.
type ReadyState int

const (
	// ReadyStatePending means the renderable has not yet reported its GPU resources ready.
	ReadyStatePending ReadyState = iota

	// ReadyStateExpanded means readiness was observed and sub-renderables were expanded.
	// The transition happens at most once per attachment.
	ReadyStateExpanded
)
