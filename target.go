package sceneshift

import "fmt"

type targetKind int

const (
	targetInvalid targetKind = iota
	targetScene
	targetID
	targetTemplate
)

// Target identifies what a transition should swap in as the new active Scene. A Target is one
// of exactly three variants: an already-built Scene (SceneTarget), a symbolic identifier that
// the Loader resolves to a resource file and loads in the background (IDTarget), or a
// previously loaded Template that instantiates synchronously (TemplateTarget).
//
// Targets are short-lived values created by the caller for each Transition call. The zero
// Target is invalid and resolves to ErrInvalidTarget.
type Target struct {
	kind     targetKind
	scene    Scene
	id       string
	template *Template
}

// SceneTarget creates a Target for a Scene that has already been constructed. The Loader
// returns it as-is, with no loading or instantiation step.
func SceneTarget(scene Scene) Target {
	return Target{kind: targetScene, scene: scene}
}

// IDTarget creates a Target for a symbolic scene identifier. If the identifier already names a
// resource path (it contains a path separator or a file extension), it is used verbatim;
// otherwise the Loader expands it using its path convention (see Loader.ExpandScenePath).
// The resource loads in the background while the transition waits.
func IDTarget(id string) Target {
	return Target{kind: targetID, id: id}
}

// TemplateTarget creates a Target for a Template that has already been loaded (for example,
// through Loader.Preload or LoadLibraryFile). Instantiation happens synchronously, with no
// background load.
func TemplateTarget(template *Template) Target {
	return Target{kind: targetTemplate, template: template}
}

// String describes the Target for logs and error messages.
func (t Target) String() string {
	switch t.kind {
	case targetScene:
		if t.scene == nil {
			return "scene(<nil>)"
		}
		return fmt.Sprintf("scene(%s)", t.scene.Name())
	case targetID:
		return fmt.Sprintf("id(%s)", t.id)
	case targetTemplate:
		if t.template == nil {
			return "template(<nil>)"
		}
		return fmt.Sprintf("template(%s)", t.template.Name)
	}
	return "invalid"
}
