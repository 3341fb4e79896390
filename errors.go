package sceneshift

import "fmt"

var (
	// ErrTransitionInProgress is returned (through the Future) when Director.Transition is
	// called while another transition is still running. The Director holds no queue; the
	// reentrant call is rejected without touching the Stage.
	ErrTransitionInProgress = fmt.Errorf("sceneshift: a transition is already in progress")

	// ErrInvalidTarget is returned when a zero or malformed Target is passed to a transition.
	ErrInvalidTarget = fmt.Errorf("sceneshift: invalid transition target")

	// ErrTemplateNotFound is returned when a Library doesn't contain a Template of the
	// requested name.
	ErrTemplateNotFound = fmt.Errorf("sceneshift: template not found")
)

// LoadError is returned (through the Future) when resolving an IDTarget fails - the resource
// file couldn't be read, or its contents couldn't be decoded. Path is the expanded resource
// path that failed; the underlying cause is available through errors.Unwrap / errors.Is.
//
// A load failure never leaves a half-attached Scene: either the Loader delivers a valid Scene,
// or the transition resolves with a LoadError and the Stage's slot is untouched by the attach
// step. Note that if the failure happens after an old scene was already removed, the Stage is
// left empty and paused; it's up to the caller to transition somewhere recoverable.
type LoadError struct {
	Path string
	Err  error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("sceneshift: loading scene from %q: %v", err.Path, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}
