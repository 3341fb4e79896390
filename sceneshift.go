package sceneshift

// sceneshift is a scene-transition orchestrator for games made with Ebitengine. It swaps the
// active Scene of a running game for a new one, running each scene's optional lifecycle hooks
// and a visual fade in a fixed order while the replacement loads in the background.
