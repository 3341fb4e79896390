package sceneshift

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type faderState int

const (
	faderIdle faderState = iota
	faderOut
	faderIn
)

// Fader is the transition gate: a full-screen color overlay that fades to opaque ahead of a
// scene swap (PlayOut) and back to transparent afterwards (PlayIn). The fade is driven by a
// gween tween advanced from Fader.Update, which the Stage calls every frame before it checks
// the pause flag - so fades keep playing while the rest of the simulation is paused.
type Fader struct {
	mu       sync.Mutex
	state    faderState
	tween    *gween.Tween
	alpha    float32
	duration float32
	easing   ease.TweenFunc
	color    color.Color
	done     chan struct{}
	fill     *ebiten.Image
}

// NewFader creates a Fader that fades a full-screen overlay of the given color over the given
// duration (in seconds). Passing a nil easing uses ease.Linear. A duration of zero or less
// makes both fades instantaneous, which is handy for tests and for games that want the swap
// without the visual.
func NewFader(overlayColor color.Color, duration float32, easing ease.TweenFunc) *Fader {
	if overlayColor == nil {
		overlayColor = color.Black
	}
	if easing == nil {
		easing = ease.Linear
	}
	return &Fader{
		color:    overlayColor,
		duration: duration,
		easing:   easing,
	}
}

// PlayOut starts fading the overlay in (towards fully opaque, hiding the scene) and returns a
// channel that closes when the fade finishes. Starting a new fade supersedes any fade still
// in progress; the superseded fade's channel is closed immediately.
func (fader *Fader) PlayOut() <-chan struct{} {
	return fader.play(faderOut, 1)
}

// PlayIn starts fading the overlay out (towards fully transparent, revealing the scene) and
// returns a channel that closes when the fade finishes. Starting a new fade supersedes any
// fade still in progress; the superseded fade's channel is closed immediately.
func (fader *Fader) PlayIn() <-chan struct{} {
	return fader.play(faderIn, 0)
}

func (fader *Fader) play(state faderState, target float32) <-chan struct{} {
	fader.mu.Lock()
	defer fader.mu.Unlock()

	if fader.done != nil {
		close(fader.done)
		fader.done = nil
	}

	done := make(chan struct{})

	if fader.duration <= 0 || fader.alpha == target {
		fader.alpha = target
		fader.state = faderIdle
		fader.tween = nil
		close(done)
		return done
	}

	// Fade over the remaining distance so an interrupted fade doesn't jump.
	distance := target - fader.alpha
	if distance < 0 {
		distance = -distance
	}
	fader.tween = gween.New(fader.alpha, target, fader.duration*distance, fader.easing)
	fader.state = state
	fader.done = done
	return done
}

// Update advances the active fade by dt seconds. The Stage calls this once per frame,
// regardless of whether the simulation is paused.
func (fader *Fader) Update(dt float32) {
	fader.mu.Lock()
	defer fader.mu.Unlock()

	if fader.tween == nil {
		return
	}

	value, finished := fader.tween.Update(dt)
	fader.alpha = value

	if finished {
		fader.tween = nil
		fader.state = faderIdle
		if fader.done != nil {
			close(fader.done)
			fader.done = nil
		}
	}
}

// Alpha returns the overlay's current opacity, from 0 (transparent) to 1 (opaque).
func (fader *Fader) Alpha() float32 {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	return fader.alpha
}

// Playing returns true while a fade is in progress.
func (fader *Fader) Playing() bool {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	return fader.state != faderIdle
}

// Draw composites the overlay over the screen at its current opacity. Call this after drawing
// the active scene. If the overlay is fully transparent, Draw does nothing.
func (fader *Fader) Draw(screen *ebiten.Image) {
	fader.mu.Lock()
	defer fader.mu.Unlock()

	if fader.alpha <= 0 {
		return
	}

	if fader.fill == nil {
		fader.fill = ebiten.NewImage(1, 1)
		fader.fill.Fill(color.White)
	}

	bounds := screen.Bounds()
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	opts.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	opts.ColorScale.ScaleWithColor(fader.color)
	opts.ColorScale.ScaleAlpha(fader.alpha)
	screen.DrawImage(fader.fill, opts)
}
