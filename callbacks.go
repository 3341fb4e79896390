package sceneshift

// DirectorCallbacks represents a set of callbacks to be called as the Director runs
// transitions. All fields are optional.
type DirectorCallbacks struct {
	// OnTransitionStart is called when a transition is accepted, just before the pipeline
	// begins (rejected reentrant calls don't trigger it).
	OnTransitionStart func(target Target)
	// OnTransitionEnd is called when a transition finishes, just before its Future
	// resolves, with the Stage's active Scene at that point and the error the Future will
	// resolve with (nil on success). It runs on the transition pipeline's goroutine.
	OnTransitionEnd func(scene Scene, err error)
}
