package sceneshift

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Director drives scene transitions. It is the only entry point for swapping the Stage's
// active Scene, and it runs exactly one transition at a time - a Transition call made while
// another is in flight is rejected with ErrTransitionInProgress rather than queued.
//
// A transition runs this ordered, strictly sequential pipeline; no step begins before the
// previous one has fully completed:
//
//  1. Pause the Stage.
//  2. If a Scene occupies the slot: await its Teardown hook (if present), emit teardown-done,
//     play the fade-out and await it, wait one Stage tick so final cleanup reactions can run,
//     then remove the Scene and await the Stage's confirmation of the removal.
//  3. Resolve the Target through the Loader (loading in the background if needed).
//  4. Attach the new Scene to the slot.
//  5. Await its Setup hook (if present), emit setup-done.
//  6. Play the fade-in and await it.
//  7. Unpause the Stage.
//  8. Await its Start hook (if present), emit start-done.
//  9. Resolve the Future successfully.
//
// When the slot starts empty (the first-ever transition), step 2 is skipped entirely; the
// pipeline still pauses in step 1 and begins at target resolution.
//
// If a hook fails or a load fails, the pipeline stops there and the Future resolves with the
// error. The Stage is then wherever the pipeline left it - possibly paused with an empty slot.
// The Director makes no attempt to roll back; the caller decides how to recover (usually by
// transitioning to a known-good scene).
type Director struct {
	stage     *Stage
	loader    *Loader
	logger    Logger
	callbacks DirectorCallbacks
	inFlight  atomic.Bool
}

// NewDirector creates a Director along with its Stage and Loader, configured by the given
// Options. Passing nil uses DefaultOptions.
func NewDirector(options *Options) *Director {
	if options == nil {
		options = DefaultOptions()
	}
	logger := options.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	fader := NewFader(options.FadeColor, options.FadeDuration, options.Easing)
	return &Director{
		stage:     NewStage(fader),
		loader:    NewLoader(options),
		logger:    logger,
		callbacks: options.Callbacks,
	}
}

// Stage returns the Director's Stage.
func (director *Director) Stage() *Stage {
	return director.stage
}

// Loader returns the Director's Loader, for registering scene constructors or preloading.
func (director *Director) Loader() *Loader {
	return director.loader
}

// Events returns the EventBus transition progress events are broadcast on. Shorthand for
// Stage().Events().
func (director *Director) Events() *EventBus {
	return director.stage.Events()
}

// Update advances the Director's Stage by dt seconds. Call it once per frame from the game's
// update function, even while the Stage is paused. Shorthand for Stage().Update(dt).
func (director *Director) Update(dt float32) {
	director.stage.Update(dt)
}

// Draw composites the transition fade over the screen. Call it after drawing the active scene.
// Shorthand for Stage().Draw(screen).
func (director *Director) Draw(screen *ebiten.Image) {
	director.stage.Draw(screen)
}

// Transition swaps the Stage's active Scene for the one the Target identifies, running the
// pipeline documented on Director. It returns immediately; the returned Future resolves when
// the transition completes or fails. The params are handed to the new scene's Setup hook.
//
// ctx flows into every hook and suspension point. There is no way to abort a transition once
// accepted, but if ctx ends at a suspension point the pipeline stops with ctx's error - the
// Stage must then be treated like any other failed transition. Passing a nil ctx uses
// context.Background().
//
// Don't block the game loop's goroutine on the returned Future: the pipeline's fades and
// waits only complete when Update keeps running. Check Future.Done (or Err) from a later
// frame, or Wait from another goroutine.
func (director *Director) Transition(ctx context.Context, target Target, params Params) *Future {

	future := newFuture()

	if !validTarget(target) {
		future.resolve(ErrInvalidTarget)
		return future
	}

	if !director.inFlight.CompareAndSwap(false, true) {
		future.resolve(ErrTransitionInProgress)
		return future
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if director.callbacks.OnTransitionStart != nil {
		director.callbacks.OnTransitionStart(target)
	}

	go func() {
		err := director.run(ctx, uuid.NewString(), target, params)
		director.inFlight.Store(false)
		if director.callbacks.OnTransitionEnd != nil {
			director.callbacks.OnTransitionEnd(director.stage.Scene(), err)
		}
		future.resolve(err)
	}()

	return future

}

// validTarget rejects targets that could never resolve, before the pipeline touches any
// shared state.
func validTarget(target Target) bool {
	switch target.kind {
	case targetScene:
		return target.scene != nil
	case targetTemplate:
		return target.template != nil
	case targetID:
		return target.id != ""
	}
	return false
}

// run executes the pipeline on its own goroutine, blocking at each suspension point until the
// Stage or Loader signals completion.
func (director *Director) run(ctx context.Context, id string, target Target, params Params) error {

	logger := director.logger
	stage := director.stage

	logger.Info("transition started", "transition_id", id, "target", target.String())

	stage.SetPaused(true)

	if old := stage.Scene(); old != nil {

		if err := invokeTeardown(ctx, old); err != nil {
			return err
		}
		stage.Events().Emit(Event{Name: EventTeardownDone, TransitionID: id})

		if err := director.await(ctx, stage.Fader().PlayOut()); err != nil {
			return err
		}

		// One tick for anything reacting to the teardown to finish up before the scene goes away.
		if err := director.await(ctx, stage.NextTick()); err != nil {
			return err
		}

		if err := director.await(ctx, stage.free(old)); err != nil {
			return err
		}

		logger.Debug("old scene removed", "transition_id", id, "scene", old.Name())

	}

	var result LoadResult
	select {
	case result = <-director.loader.Resolve(target):
	case <-ctx.Done():
		return ctx.Err()
	}
	if result.Err != nil {
		logger.Error("transition failed to load target", "transition_id", id, "target", target.String(), "error", result.Err)
		return result.Err
	}
	scene := result.Scene

	stage.attach(scene)
	logger.Debug("new scene attached", "transition_id", id, "scene", scene.Name())

	if err := invokeSetup(ctx, scene, params); err != nil {
		return err
	}
	stage.Events().Emit(Event{Name: EventSetupDone, TransitionID: id})

	if err := director.await(ctx, stage.Fader().PlayIn()); err != nil {
		return err
	}

	stage.SetPaused(false)

	if err := invokeStart(ctx, scene); err != nil {
		return err
	}
	stage.Events().Emit(Event{Name: EventStartDone, TransitionID: id})

	logger.Info("transition complete", "transition_id", id, "scene", scene.Name())

	return nil

}

func (director *Director) await(ctx context.Context, signal <-chan struct{}) error {
	select {
	case <-signal:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
