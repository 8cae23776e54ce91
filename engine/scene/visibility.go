package scene

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
	"github.com/go-gl/mathgl/mgl32"
)

// Visibility is the culling strategy a SceneManager delegates to. Implementations are
// selected at construction with WithVisibility.
type Visibility interface {
	// ClipScene narrows the candidate roots for one camera before per-node testing.
	// The returned slice preserves the relative order of candidates. Nodes without a
	// valid world bound must be kept.
	//
	// Parameters:
	//   - frustum: the camera frustum
	//   - candidates: root nodes with up-to-date world bounds
	//
	// Returns:
	//   - []scene_node.Node: the roots that may be visible
	ClipScene(frustum common.Frustum, candidates []scene_node.Node) []scene_node.Node

	// AABBVisible classifies a world-space box against the frustum.
	AABBVisible(frustum common.Frustum, b common.AABB) common.BoundOverlap

	// OBBVisible classifies a world-space oriented box against the frustum.
	OBBVisible(frustum common.Frustum, o common.OBB) common.BoundOverlap

	// SphereVisible classifies a world-space sphere against the frustum.
	SphereVisible(frustum common.Frustum, s common.Sphere) common.BoundOverlap

	// FrustumVisible classifies another frustum against the frustum.
	FrustumVisible(frustum common.Frustum, o common.Frustum) common.BoundOverlap
}

// bruteForce tests every candidate directly.
type bruteForce struct{}

var _ Visibility = bruteForce{}

// NewBruteForceVisibility returns the default strategy, which performs no coarse clipping.
//
// Returns:
//   - Visibility: the brute-force strategy
func NewBruteForceVisibility() Visibility {
	return bruteForce{}
}

func (bruteForce) ClipScene(_ common.Frustum, candidates []scene_node.Node) []scene_node.Node {
	return candidates
}

func (bruteForce) AABBVisible(f common.Frustum, b common.AABB) common.BoundOverlap {
	return f.IntersectAABB(b)
}

func (bruteForce) OBBVisible(f common.Frustum, o common.OBB) common.BoundOverlap {
	return f.IntersectOBB(o)
}

func (bruteForce) SphereVisible(f common.Frustum, s common.Sphere) common.BoundOverlap {
	return f.IntersectSphere(s)
}

func (bruteForce) FrustumVisible(f common.Frustum, o common.Frustum) common.BoundOverlap {
	return f.IntersectFrustum(o)
}

// gridVisibility bins candidates into a loose uniform grid keyed by bound center. Each
// cell's bound is the union of its members' bounds, so a cell outside the frustum rejects
// every member without testing them individually.
type gridVisibility struct {
	bruteForce
	cellSize float32
}

var _ Visibility = &gridVisibility{}

type cellKey [3]int32

type gridCell struct {
	bound   common.AABB
	members []int
}

// NewGridVisibility returns a strategy that rejects whole grid cells before per-node tests.
// Panics if cellSize is not positive.
//
// Parameters:
//   - cellSize: the edge length of a grid cell in world units
//
// Returns:
//   - Visibility: the grid strategy
func NewGridVisibility(cellSize float32) Visibility {
	if cellSize <= 0 {
		panic("scene: NewGridVisibility requires a positive cell size")
	}
	return &gridVisibility{cellSize: cellSize}
}

func (g *gridVisibility) ClipScene(f common.Frustum, candidates []scene_node.Node) []scene_node.Node {
	keep := make([]bool, len(candidates))
	cells := make(map[cellKey]*gridCell)
	order := make([]cellKey, 0)

	for i, n := range candidates {
		if !n.HasBound() || !n.Attrib().Has(scene_node.AttribCullable) {
			keep[i] = true
			continue
		}
		b := n.PosBoundWS()
		if b.IsEmpty() {
			keep[i] = true
			continue
		}
		k := g.key(b.Center())
		c, ok := cells[k]
		if !ok {
			c = &gridCell{bound: common.EmptyAABB()}
			cells[k] = c
			order = append(order, k)
		}
		c.bound = c.bound.Union(b)
		c.members = append(c.members, i)
	}

	for _, k := range order {
		c := cells[k]
		if f.IntersectAABB(c.bound) == common.BoundOverlapNo {
			continue
		}
		for _, i := range c.members {
			keep[i] = true
		}
	}

	out := make([]scene_node.Node, 0, len(candidates))
	for i, n := range candidates {
		if keep[i] {
			out = append(out, n)
		}
	}
	return out
}

func (g *gridVisibility) key(p mgl32.Vec3) cellKey {
	var k cellKey
	for i := range k {
		k[i] = int32(math.Floor(float64(p[i] / g.cellSize)))
	}
	return k
}
