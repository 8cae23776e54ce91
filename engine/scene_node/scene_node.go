package scene_node

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneNode is the implementation of the Node interface.
type sceneNode struct {
	mu *sync.RWMutex

	name   string
	attrib Attrib

	parent   *sceneNode
	children []*sceneNode

	modelMatrix    mgl32.Mat4 // local to parent
	absModelMatrix mgl32.Mat4 // local to world, valid after UpdateAbsModelMatrix

	renderables []renderable.Renderable
	readyStates []ReadyState // parallel to renderables

	tracksBound     bool
	boundDirty      bool
	boundGen        uint64
	posBoundOS      common.AABB
	posBoundWS      common.AABB
	boundRecomputes int

	visibleMark common.BoundOverlap

	subThreadUpdate  UpdateCommand
	mainThreadUpdate UpdateCommand
}

// Node is a transformable element of the scene tree. A node owns its children, holds a
// non-owning reference to its parent, carries an ordered list of renderables and caches
// an object-space and world-space bound when its attributes ask for one.
// Thread-safe for concurrent access; structural edits of the same node must not race
// with its propagation.
//
// Node is sealed: NewSceneNode returns the only implementation, because AddChild and
// IsNodeInSubTree reach into parent links and dirty flags that are not part of the interface.
type Node interface {
	// Name returns the node's name. Names need not be unique.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the node's name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Attrib returns the node's attribute mask.
	//
	// Returns:
	//   - Attrib: the attribute bits
	Attrib() Attrib

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// NumChildren returns the number of direct children.
	//
	// Returns:
	//   - int: the child count
	NumChildren() int

	// Child returns the direct child at index i. Panics when i is out of range.
	//
	// Parameters:
	//   - i: the child index
	//
	// Returns:
	//   - Node: the child
	Child(i int) Node

	// Children returns a snapshot of the direct children in order.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// AddChild appends node to the children and marks the bound dirty. A node that
	// already has a parent is detached from it first. Panics if node is this node or
	// one of its ancestors.
	//
	// Parameters:
	//   - node: the child to add
	AddChild(node Node)

	// RemoveChild detaches node if it is a direct child and marks the bound dirty.
	// Removing a node that is not a child is a no-op.
	//
	// Parameters:
	//   - node: the child to remove
	RemoveChild(node Node)

	// ClearChildren detaches every child and marks the bound dirty.
	ClearChildren()

	// FindFirstNode returns the first node named name in depth-first pre-order over the
	// subtree rooted here, self included.
	//
	// Parameters:
	//   - name: the exact name to match
	//
	// Returns:
	//   - Node: the match, or nil if none
	FindFirstNode(name string) Node

	// FindAllNode returns every node named name in depth-first pre-order.
	//
	// Parameters:
	//   - name: the exact name to match
	//
	// Returns:
	//   - []Node: the matches, empty if none
	FindAllNode(name string) []Node

	// IsNodeInSubTree reports whether node is this node or one of its descendants.
	//
	// Parameters:
	//   - node: the node to look for
	//
	// Returns:
	//   - bool: true if found
	IsNodeInSubTree(node Node) bool

	// Traverse visits the subtree in depth-first pre-order. Returning false from visit
	// skips the visited node's descendants.
	//
	// Parameters:
	//   - visit: the callback invoked for every node
	Traverse(visit func(Node) bool)

	// NumRenderables returns the number of attached renderables.
	//
	// Returns:
	//   - int: the renderable count
	NumRenderables() int

	// Renderable returns the renderable at index i. Panics when i is out of range.
	//
	// Parameters:
	//   - i: the renderable index
	//
	// Returns:
	//   - renderable.Renderable: the renderable
	Renderable(i int) renderable.Renderable

	// ReadyState returns the hardware readiness state of the renderable at index i.
	// Panics when i is out of range.
	//
	// Parameters:
	//   - i: the renderable index
	//
	// Returns:
	//   - ReadyState: the readiness state
	ReadyState(i int) ReadyState

	// AddRenderable attaches r in the pending state and marks the bound dirty.
	//
	// Parameters:
	//   - r: the renderable to attach
	AddRenderable(r renderable.Renderable)

	// DelRenderable detaches the first occurrence of r and marks the bound dirty.
	// Detaching a renderable that is not attached is a no-op.
	//
	// Parameters:
	//   - r: the renderable to detach
	DelRenderable(r renderable.Renderable)

	// ModelMatrix returns the local-to-parent transform.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	ModelMatrix() mgl32.Mat4

	// SetModelMatrix sets the local-to-parent transform and marks the ancestors' bounds dirty.
	// The world matrix is refreshed by the next UpdateAbsModelMatrix.
	//
	// Parameters:
	//   - m: the local transform
	SetModelMatrix(m mgl32.Mat4)

	// AbsModelMatrix returns the cached local-to-world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	AbsModelMatrix() mgl32.Mat4

	// UpdateAbsModelMatrix recomputes the world transform from the parent's cached world
	// transform, refreshes the world bound when one is tracked and pushes the world
	// transform to every renderable. Callers propagate top-down.
	UpdateAbsModelMatrix()

	// HasBound reports whether the node tracks a bound at all.
	//
	// Returns:
	//   - bool: true if not an overlay and cullable or moveable
	HasBound() bool

	// BoundDirty reports whether the object-space bound awaits recomputation.
	//
	// Returns:
	//   - bool: true if dirty
	BoundDirty() bool

	// PosBoundOS returns the object-space bound, recomputing it when dirty. The bound is the
	// union of the renderables' bounds and every bounded child's bound in this node's space.
	// Panics on a node without a tracked bound.
	//
	// Returns:
	//   - common.AABB: the object-space bound, empty when nothing contributes
	PosBoundOS() common.AABB

	// PosBoundWS returns the world-space bound computed by the last UpdateAbsModelMatrix.
	// Panics on a node without a tracked bound.
	//
	// Returns:
	//   - common.AABB: the world-space bound
	PosBoundWS() common.AABB

	// SubThreadUpdate runs the bound background command, if any.
	//
	// Parameters:
	//   - appTime: elapsed application time in seconds
	//   - elapsed: time since the previous tick in seconds
	SubThreadUpdate(appTime, elapsed float32)

	// MainThreadUpdate promotes renderables that became hardware-ready, expands their
	// sub-renderables into child nodes, refreshes the world transform if anything changed
	// and runs the bound main-thread command.
	//
	// Parameters:
	//   - reg: the registrar new child nodes are registered with, or nil to skip registration
	//   - appTime: elapsed application time in seconds
	//   - elapsed: time since the previous frame in seconds
	//
	// Returns:
	//   - bool: true if any renderable changed state
	MainThreadUpdate(reg Registrar, appTime, elapsed float32) bool

	// OnAttachRenderable expands the sub-renderables of every pending renderable that now
	// reports hardware-ready into one child node per sub-renderable, inheriting this node's
	// attributes. Each renderable is expanded at most once.
	//
	// Parameters:
	//   - reg: the registrar the new children are registered with, or nil to skip registration
	//
	// Returns:
	//   - int: the number of renderables expanded
	OnAttachRenderable(reg Registrar) int

	// SetSubThreadUpdate binds the command run on the background update goroutine.
	//
	// Parameters:
	//   - cmd: the command, or nil to unbind
	SetSubThreadUpdate(cmd UpdateCommand)

	// SetMainThreadUpdate binds the command run during the frame's propagation phase.
	//
	// Parameters:
	//   - cmd: the command, or nil to unbind
	SetMainThreadUpdate(cmd UpdateCommand)

	// AddToSceneManager registers this node and its whole subtree, parents first.
	//
	// Parameters:
	//   - reg: the registrar to register with
	AddToSceneManager(reg Registrar)

	// AddToSceneManagerLocked is AddToSceneManager through the registrar's locking variant,
	// for use off the main thread.
	//
	// Parameters:
	//   - reg: the registrar to register with
	AddToSceneManagerLocked(reg Registrar)

	// DelFromSceneManager unregisters this node and its whole subtree, children first.
	//
	// Parameters:
	//   - reg: the registrar to unregister from
	DelFromSceneManager(reg Registrar)

	// DelFromSceneManagerLocked is DelFromSceneManager through the registrar's locking variant,
	// for use off the main thread.
	//
	// Parameters:
	//   - reg: the registrar to unregister from
	DelFromSceneManagerLocked(reg Registrar)

	// Visible reports whether the Invisible attribute is clear.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible clears or sets the Invisible attribute on this node and its subtree.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// VisibleMark returns the outcome of the last culling test for this node.
	//
	// Returns:
	//   - common.BoundOverlap: the cached mark
	VisibleMark() common.BoundOverlap

	// SetVisibleMark stores the outcome of a culling test.
	//
	// Parameters:
	//   - mark: the outcome
	SetVisibleMark(mark common.BoundOverlap)

	// SetPass prepares every renderable for pass. Nodes with AttribNotCastShadow are hidden
	// while a shadow-map pass is set and shown again for any other pass.
	//
	// Parameters:
	//   - pass: the pass type
	SetPass(pass renderable.PassType)

	// SetObjectID forwards a picking identifier to every renderable.
	//
	// Parameters:
	//   - id: the picking identifier
	SetObjectID(id uint32)

	// SetSelectMode forwards selection mode to every renderable.
	//
	// Parameters:
	//   - on: true to render object IDs
	SetSelectMode(on bool)

	// SelectMode reports the first renderable's selection mode, false if there is none.
	SelectMode() bool

	// TransparencyBackFace reports the first renderable's flag, false if there is none.
	TransparencyBackFace() bool

	// TransparencyFrontFace reports the first renderable's flag, false if there is none.
	TransparencyFrontFace() bool

	// SSS reports the first renderable's flag, false if there is none.
	SSS() bool

	// Reflection reports the first renderable's flag, false if there is none.
	Reflection() bool

	// SimpleForward reports the first renderable's flag, false if there is none.
	SimpleForward() bool

	// VDM reports the first renderable's flag, false if there is none.
	VDM() bool

	// impl seals the interface.
	impl() *sceneNode
}

var _ Node = &sceneNode{}

// NewSceneNode creates a node with the given attribute mask. Renderables supplied through
// options are attached pending; any that are already hardware-ready are expanded
// immediately without scene registration.
//
// Parameters:
//   - attrib: the attribute mask
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewSceneNode(attrib Attrib, options ...SceneNodeBuilderOption) Node {
	n := &sceneNode{
		mu:             &sync.RWMutex{},
		attrib:         attrib,
		modelMatrix:    mgl32.Ident4(),
		absModelMatrix: mgl32.Ident4(),
		tracksBound:    attrib.tracksBound(),
		boundDirty:     true,
		posBoundOS:     common.EmptyAABB(),
		posBoundWS:     common.EmptyAABB(),
		visibleMark:    common.BoundOverlapYes,
	}
	for _, option := range options {
		option(n)
	}
	if len(n.renderables) > 0 {
		n.OnAttachRenderable(nil)
	}
	return n
}

func (n *sceneNode) impl() *sceneNode {
	return n
}

func (n *sceneNode) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *sceneNode) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

func (n *sceneNode) Attrib() Attrib {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attrib
}

func (n *sceneNode) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *sceneNode) NumChildren() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.children)
}

func (n *sceneNode) Child(i int) Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("scene_node: Child index %d out of range [0, %d)", i, len(n.children)))
	}
	return n.children[i]
}

func (n *sceneNode) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *sceneNode) AddChild(node Node) {
	if node == nil {
		panic("scene_node: AddChild requires a non-nil node")
	}
	c := node.impl()
	if c.IsNodeInSubTree(n) {
		panic("scene_node: AddChild would create a cycle")
	}
	if old := c.parentImpl(); old != nil {
		old.RemoveChild(c)
	}

	n.mu.Lock()
	n.children = append(n.children, c)
	n.mu.Unlock()

	c.mu.Lock()
	c.parent = n
	c.mu.Unlock()

	n.markBoundDirty()
}

func (n *sceneNode) RemoveChild(node Node) {
	if node == nil {
		return
	}
	c := node.impl()

	n.mu.Lock()
	i := slices.Index(n.children, c)
	if i < 0 {
		n.mu.Unlock()
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	n.mu.Unlock()

	c.mu.Lock()
	if c.parent == n {
		c.parent = nil
	}
	c.mu.Unlock()

	n.markBoundDirty()
}

func (n *sceneNode) ClearChildren() {
	n.mu.Lock()
	children := n.children
	n.children = nil
	n.mu.Unlock()

	for _, c := range children {
		c.mu.Lock()
		if c.parent == n {
			c.parent = nil
		}
		c.mu.Unlock()
	}
	n.markBoundDirty()
}

func (n *sceneNode) FindFirstNode(name string) Node {
	var found Node
	n.Traverse(func(node Node) bool {
		if found != nil {
			return false
		}
		if node.Name() == name {
			found = node
			return false
		}
		return true
	})
	return found
}

func (n *sceneNode) FindAllNode(name string) []Node {
	var found []Node
	n.Traverse(func(node Node) bool {
		if node.Name() == name {
			found = append(found, node)
		}
		return true
	})
	return found
}

func (n *sceneNode) IsNodeInSubTree(node Node) bool {
	if node == nil {
		return false
	}
	target := node.impl()
	found := false
	n.Traverse(func(cur Node) bool {
		if found {
			return false
		}
		if cur.impl() == target {
			found = true
			return false
		}
		return true
	})
	return found
}

func (n *sceneNode) Traverse(visit func(Node) bool) {
	if !visit(n) {
		return
	}
	n.mu.RLock()
	children := slices.Clone(n.children)
	n.mu.RUnlock()
	for _, c := range children {
		c.Traverse(visit)
	}
}

func (n *sceneNode) NumRenderables() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.renderables)
}

func (n *sceneNode) Renderable(i int) renderable.Renderable {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if i < 0 || i >= len(n.renderables) {
		panic(fmt.Sprintf("scene_node: Renderable index %d out of range [0, %d)", i, len(n.renderables)))
	}
	return n.renderables[i]
}

func (n *sceneNode) ReadyState(i int) ReadyState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if i < 0 || i >= len(n.readyStates) {
		panic(fmt.Sprintf("scene_node: ReadyState index %d out of range [0, %d)", i, len(n.readyStates)))
	}
	return n.readyStates[i]
}

func (n *sceneNode) AddRenderable(r renderable.Renderable) {
	if r == nil {
		panic("scene_node: AddRenderable requires a non-nil renderable")
	}
	n.mu.Lock()
	n.renderables = append(n.renderables, r)
	n.readyStates = append(n.readyStates, ReadyStatePending)
	n.mu.Unlock()

	n.markBoundDirty()
}

func (n *sceneNode) DelRenderable(r renderable.Renderable) {
	n.mu.Lock()
	i := slices.Index(n.renderables, r)
	if i < 0 {
		n.mu.Unlock()
		return
	}
	n.renderables = slices.Delete(n.renderables, i, i+1)
	n.readyStates = slices.Delete(n.readyStates, i, i+1)
	n.mu.Unlock()

	n.markBoundDirty()
}

func (n *sceneNode) ModelMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.modelMatrix
}

func (n *sceneNode) SetModelMatrix(m mgl32.Mat4) {
	n.mu.Lock()
	n.modelMatrix = m
	p := n.parent
	n.mu.Unlock()

	if p != nil {
		p.markBoundDirty()
	}
}

func (n *sceneNode) AbsModelMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.absModelMatrix
}

func (n *sceneNode) UpdateAbsModelMatrix() {
	n.mu.RLock()
	p := n.parent
	world := n.modelMatrix
	n.mu.RUnlock()

	if p != nil {
		world = p.AbsModelMatrix().Mul4(world)
	}

	var ws common.AABB
	if n.tracksBound {
		ws = n.PosBoundOS().Transform(world)
	}

	n.mu.Lock()
	n.absModelMatrix = world
	if n.tracksBound {
		n.posBoundWS = ws
	}
	renderables := slices.Clone(n.renderables)
	n.mu.Unlock()

	for _, r := range renderables {
		r.SetModelMatrix(world)
	}
}

func (n *sceneNode) HasBound() bool {
	return n.tracksBound
}

func (n *sceneNode) BoundDirty() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.boundDirty
}

func (n *sceneNode) PosBoundOS() common.AABB {
	if !n.tracksBound {
		panic("scene_node: PosBoundOS called on a node without a tracked bound")
	}

	n.mu.RLock()
	if !n.boundDirty {
		b := n.posBoundOS
		n.mu.RUnlock()
		return b
	}
	gen := n.boundGen
	renderables := slices.Clone(n.renderables)
	children := slices.Clone(n.children)
	n.mu.RUnlock()

	b := common.EmptyAABB()
	for _, r := range renderables {
		b = b.Union(r.PosBound())
	}
	for _, c := range children {
		if !c.tracksBound {
			continue
		}
		b = b.Union(c.PosBoundOS().Transform(c.ModelMatrix()))
	}

	n.mu.Lock()
	n.boundRecomputes++
	if n.boundGen == gen {
		n.posBoundOS = b
		n.boundDirty = false
	}
	n.mu.Unlock()
	return b
}

func (n *sceneNode) PosBoundWS() common.AABB {
	if !n.tracksBound {
		panic("scene_node: PosBoundWS called on a node without a tracked bound")
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.posBoundWS
}

// markBoundDirty flags this node and every ancestor for bound recomputation.
func (n *sceneNode) markBoundDirty() {
	for cur := n; cur != nil; {
		cur.mu.Lock()
		cur.boundDirty = true
		cur.boundGen++
		p := cur.parent
		cur.mu.Unlock()
		cur = p
	}
}

func (n *sceneNode) parentImpl() *sceneNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

func (n *sceneNode) SubThreadUpdate(appTime, elapsed float32) {
	n.mu.RLock()
	cmd := n.subThreadUpdate
	n.mu.RUnlock()
	if cmd != nil {
		cmd.Execute(n, appTime, elapsed)
	}
}

func (n *sceneNode) MainThreadUpdate(reg Registrar, appTime, elapsed float32) bool {
	refreshed := n.OnAttachRenderable(reg) > 0
	if refreshed {
		n.UpdateAbsModelMatrix()
	}

	n.mu.RLock()
	cmd := n.mainThreadUpdate
	n.mu.RUnlock()
	if cmd != nil {
		cmd.Execute(n, appTime, elapsed)
	}
	return refreshed
}

func (n *sceneNode) OnAttachRenderable(reg Registrar) int {
	n.mu.Lock()
	var ready []renderable.Renderable
	for i, r := range n.renderables {
		if n.readyStates[i] == ReadyStatePending && r.HWResourceReady() {
			n.readyStates[i] = ReadyStateExpanded
			ready = append(ready, r)
		}
	}
	attrib := n.attrib
	n.mu.Unlock()

	for _, r := range ready {
		for i := 0; i < r.NumSubrenderables(); i++ {
			child := NewSceneNode(attrib, WithRenderables(r.Subrenderable(i)))
			n.AddChild(child)
			if reg != nil {
				reg.AddSceneNodeLocked(child)
			}
		}
	}
	return len(ready)
}

func (n *sceneNode) SetSubThreadUpdate(cmd UpdateCommand) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subThreadUpdate = cmd
}

func (n *sceneNode) SetMainThreadUpdate(cmd UpdateCommand) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mainThreadUpdate = cmd
}

func (n *sceneNode) AddToSceneManager(reg Registrar) {
	reg.AddSceneNode(n)
	for _, c := range n.Children() {
		c.AddToSceneManager(reg)
	}
}

func (n *sceneNode) AddToSceneManagerLocked(reg Registrar) {
	reg.AddSceneNodeLocked(n)
	for _, c := range n.Children() {
		c.AddToSceneManagerLocked(reg)
	}
}

func (n *sceneNode) DelFromSceneManager(reg Registrar) {
	for _, c := range n.Children() {
		c.DelFromSceneManager(reg)
	}
	reg.DelSceneNode(n)
}

func (n *sceneNode) DelFromSceneManagerLocked(reg Registrar) {
	for _, c := range n.Children() {
		c.DelFromSceneManagerLocked(reg)
	}
	reg.DelSceneNodeLocked(n)
}

func (n *sceneNode) Visible() bool {
	return !n.Attrib().Has(AttribInvisible)
}

func (n *sceneNode) SetVisible(visible bool) {
	n.mu.Lock()
	if visible {
		n.attrib &^= AttribInvisible
	} else {
		n.attrib |= AttribInvisible
	}
	children := slices.Clone(n.children)
	n.mu.Unlock()

	for _, c := range children {
		c.SetVisible(visible)
	}
}

func (n *sceneNode) VisibleMark() common.BoundOverlap {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visibleMark
}

func (n *sceneNode) SetVisibleMark(mark common.BoundOverlap) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visibleMark = mark
}

func (n *sceneNode) SetPass(pass renderable.PassType) {
	for _, r := range n.renderableSnapshot() {
		r.SetPass(pass)
	}
	if n.Attrib().Has(AttribNotCastShadow) {
		n.SetVisible(!pass.IsShadowPass())
	}
}

func (n *sceneNode) SetObjectID(id uint32) {
	for _, r := range n.renderableSnapshot() {
		r.SetObjectID(id)
	}
}

func (n *sceneNode) SetSelectMode(on bool) {
	for _, r := range n.renderableSnapshot() {
		r.SetSelectMode(on)
	}
}

// The per-renderable queries below consult only the first renderable. Nodes carrying
// several renderables with differing flags report the first one's.

func (n *sceneNode) SelectMode() bool {
	r := n.firstRenderable()
	return r != nil && r.SelectMode()
}

func (n *sceneNode) TransparencyBackFace() bool {
	r := n.firstRenderable()
	return r != nil && r.TransparencyBackFace()
}

func (n *sceneNode) TransparencyFrontFace() bool {
	r := n.firstRenderable()
	return r != nil && r.TransparencyFrontFace()
}

func (n *sceneNode) SSS() bool {
	r := n.firstRenderable()
	return r != nil && r.SSS()
}

func (n *sceneNode) Reflection() bool {
	r := n.firstRenderable()
	return r != nil && r.Reflection()
}

func (n *sceneNode) SimpleForward() bool {
	r := n.firstRenderable()
	return r != nil && r.SimpleForward()
}

func (n *sceneNode) VDM() bool {
	r := n.firstRenderable()
	return r != nil && r.VDM()
}

func (n *sceneNode) firstRenderable() renderable.Renderable {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.renderables) == 0 {
		return nil
	}
	return n.renderables[0]
}

func (n *sceneNode) renderableSnapshot() []renderable.Renderable {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.renderables)
}
