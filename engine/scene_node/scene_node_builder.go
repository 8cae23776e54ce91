package scene_node

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneNodeBuilderOption is a functional option for configuring a Node.
// Use the With* functions to create options.
type SceneNodeBuilderOption func(n *sceneNode)

// WithName sets the node's name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithName(name string) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		n.name = name
	}
}

// WithRenderables attaches renderables in the pending state.
//
// Parameters:
//   - renderables: the renderables to attach, in order
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithRenderables(renderables ...renderable.Renderable) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		for _, r := range renderables {
			if r == nil {
				panic("scene_node: WithRenderables requires non-nil renderables")
			}
			n.renderables = append(n.renderables, r)
			n.readyStates = append(n.readyStates, ReadyStatePending)
		}
	}
}

// WithModelMatrix sets the initial local-to-parent transform.
//
// Parameters:
//   - m: the local transform
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithModelMatrix(m mgl32.Mat4) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		n.modelMatrix = m
		n.absModelMatrix = m
	}
}

// WithSubThreadUpdate binds the command run on the background update goroutine.
//
// Parameters:
//   - cmd: the background command
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithSubThreadUpdate(cmd UpdateCommand) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		n.subThreadUpdate = cmd
	}
}

// WithMainThreadUpdate binds the command run during the frame's propagation phase.
//
// Parameters:
//   - cmd: the main-thread command
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithMainThreadUpdate(cmd UpdateCommand) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		n.mainThreadUpdate = cmd
	}
}

// WithChildren parents the given nodes under the new node in order.
//
// Parameters:
//   - children: the child nodes
//
// Returns:
//   - SceneNodeBuilderOption: option function to apply
func WithChildren(children ...Node) SceneNodeBuilderOption {
	return func(n *sceneNode) {
		for _, c := range children {
			n.AddChild(c)
		}
	}
}
