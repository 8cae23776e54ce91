package scene_node

// UpdateCommand is work the scene manager dispatches for a node once per tick.
// Background commands run on the worker pool, concurrently with other roots' commands, and
// must register or unregister nodes only through the Locked calls. Main-thread commands run
// during the frame's propagation phase. Both kinds run under the manager's frame lock, so
// they may use its registry, camera, light and visibility methods but not the lifecycle and
// frame methods (Start, Suspend, Resume, Suspended, Close, Update, Flush,
// UpdateRequestToken, Marks, AppTime); the appTime argument replaces AppTime.
type UpdateCommand interface {
	// Execute runs the command.
	//
	// Parameters:
	//   - n: the node the command is bound to
	//   - appTime: elapsed application time in seconds
	//   - elapsed: time since the previous tick in seconds
	Execute(n Node, appTime, elapsed float32)
}

// UpdateFunc adapts a plain function to UpdateCommand.
type UpdateFunc func(n Node, appTime, elapsed float32)

// Execute calls f.
func (f UpdateFunc) Execute(n Node, appTime, elapsed float32) {
	f(n, appTime, elapsed)
}

// Registrar is the part of the scene manager nodes use to register themselves.
// The Locked variants take the registry mutex and are the ones to call from background
// commands and from main-thread callbacks such as lazy renderable expansion. The plain
// variants are meant for main-thread call sites.
type Registrar interface {
	// AddSceneNode appends n to the registry.
	AddSceneNode(n Node)

	// AddSceneNodeLocked appends n to the registry under the registry mutex.
	// Safe to call from any goroutine.
	AddSceneNodeLocked(n Node)

	// DelSceneNode removes the first registry entry equal to n.
	DelSceneNode(n Node)

	// DelSceneNodeLocked removes the first registry entry equal to n under the registry mutex.
	// Safe to call from any goroutine.
	DelSceneNodeLocked(n Node)
}
