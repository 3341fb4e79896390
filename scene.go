package sceneshift

import "context"

// Params is the list of arbitrary arguments handed to a Scene's Setup hook when it becomes the
// active scene. What the values mean is entirely up to the game (spawn points, difficulty,
// save data, etc.); the Director just carries them through the transition unchanged.
type Params []any

// Scene is the unit of active content a Stage manages - a level, a menu, a cutscene, and so on.
// A Stage holds at most one active Scene at a time, and the Director replaces it through
// Director.Transition.
//
// Beyond its name, a Scene is opaque to sceneshift. Scenes opt into lifecycle hooks by
// implementing any combination of the Teardowner, Setupper, and Starter interfaces; a Scene
// that implements none of them is perfectly legal and transitions instantly through each
// hook point.
type Scene interface {
	// Name returns the scene's name.
	Name() string
}

// Teardowner is implemented by Scenes that want to run cleanup before being removed from the
// Stage (saving state, stopping music, fading out UI, etc.). Teardown is awaited to completion
// before the fade-out begins, and may take as long as it needs - the transition pipeline
// blocks on it with no timeout.
type Teardowner interface {
	Teardown(ctx context.Context) error
}

// Setupper is implemented by Scenes that want to initialize themselves after being attached to
// the Stage but before the fade-in reveals them. The params are the ones passed to
// Director.Transition. Like all hooks, Setup is awaited to completion with no timeout, so it
// can drive long-running work like streaming in assets behind the fade.
type Setupper interface {
	Setup(ctx context.Context, params Params) error
}

// Starter is implemented by Scenes that want to begin gameplay logic once the transition has
// fully finished - the fade-in is done and the Stage is unpaused by the time Start runs.
type Starter interface {
	Start(ctx context.Context) error
}
