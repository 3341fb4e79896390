package sceneshift

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage owns the process-wide state a transition coordinates: the single content slot holding
// the active Scene, the pause flag that suspends the simulation, the Fader, and the EventBus.
// Rather than living as ambient global state, a Stage is constructed once (usually by
// NewDirector) and shared by reference with everything that needs it.
//
// The host game drives the Stage from its own loop: call Update once per logical frame with
// the frame's delta time, and Draw after rendering the active scene so the fade composites on
// top. Update is also the Stage's scheduler - pending scene removals and tick waits registered
// by the transition pipeline complete on the next Update call.
//
// Outside of an in-progress transition the slot holds exactly zero or one Scene; during a
// transition it is briefly empty between the old scene's removal and the new one's attach.
type Stage struct {
	mu          sync.Mutex
	scene       Scene
	paused      bool
	pendingFree Scene
	freeDone    chan struct{}
	ticks       []chan struct{}

	fader  *Fader
	events *EventBus
}

// NewStage creates a Stage using the given Fader. Passing nil creates a default black
// half-second fade.
func NewStage(fader *Fader) *Stage {
	if fader == nil {
		fader = NewFader(nil, 0.5, nil)
	}
	return &Stage{
		fader:  fader,
		events: NewEventBus(),
	}
}

// Scene returns the Scene currently occupying the Stage's content slot, or nil if the slot is
// empty (before the first transition, or mid-transition).
func (stage *Stage) Scene() Scene {
	stage.mu.Lock()
	defer stage.mu.Unlock()
	return stage.scene
}

// Paused returns whether the simulation should currently be suspended. The game's own update
// logic is expected to consult this each frame and skip advancing gameplay while it's true;
// the Stage itself (and so the fade) keeps updating regardless.
func (stage *Stage) Paused() bool {
	stage.mu.Lock()
	defer stage.mu.Unlock()
	return stage.paused
}

// SetPaused sets the simulation pause flag. The Director sets it true before a transition's
// teardown begins and clears it immediately after the fade-in completes.
func (stage *Stage) SetPaused(paused bool) {
	stage.mu.Lock()
	defer stage.mu.Unlock()
	stage.paused = paused
}

// Fader returns the Stage's transition Fader.
func (stage *Stage) Fader() *Fader {
	return stage.fader
}

// Events returns the Stage's EventBus, on which transition progress events are broadcast.
func (stage *Stage) Events() *EventBus {
	return stage.events
}

// NextTick returns a channel that closes on the next Update call. The transition pipeline uses
// it to yield for one scheduling step; games can use it to defer work to the next frame.
func (stage *Stage) NextTick() <-chan struct{} {
	stage.mu.Lock()
	defer stage.mu.Unlock()
	tick := make(chan struct{})
	stage.ticks = append(stage.ticks, tick)
	return tick
}

// attach places the Scene into the content slot.
func (stage *Stage) attach(scene Scene) {
	stage.mu.Lock()
	defer stage.mu.Unlock()
	stage.scene = scene
}

// free schedules the Scene's removal from the content slot and returns a channel that closes
// once the removal has actually happened (on the next Update call). If the Scene isn't the
// slot's current occupant, the channel closes immediately.
func (stage *Stage) free(scene Scene) <-chan struct{} {
	stage.mu.Lock()
	defer stage.mu.Unlock()

	done := make(chan struct{})
	if stage.scene != scene {
		close(done)
		return done
	}
	stage.pendingFree = scene
	stage.freeDone = done
	return done
}

// Update advances the Stage by dt seconds: the fade progresses, any scheduled scene removal is
// carried out, and tick waiters are released. Call it once per frame, before the game decides
// whether to advance the simulation - Update must run even while the Stage is paused, since
// the fade plays under a paused simulation.
func (stage *Stage) Update(dt float32) {
	stage.fader.Update(dt)

	stage.mu.Lock()
	var freed chan struct{}
	if stage.pendingFree != nil {
		if stage.scene == stage.pendingFree {
			stage.scene = nil
		}
		freed = stage.freeDone
		stage.pendingFree = nil
		stage.freeDone = nil
	}
	ticks := stage.ticks
	stage.ticks = nil
	stage.mu.Unlock()

	if freed != nil {
		close(freed)
	}
	for _, tick := range ticks {
		close(tick)
	}
}

// Draw composites the Stage's fade overlay over the screen. Call it after drawing the active
// scene each frame.
func (stage *Stage) Draw(screen *ebiten.Image) {
	stage.fader.Draw(screen)
}
