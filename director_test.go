package sceneshift

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects pipeline observations (hook invocations, events) in order, so tests can
// assert on the exact sequence a transition ran through.
type recorder struct {
	mu      sync.Mutex
	entries []string
}

func (rec *recorder) add(entry string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.entries = append(rec.entries, entry)
}

func (rec *recorder) list() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string{}, rec.entries...)
}

// hookScene implements all three lifecycle hooks, recording each invocation together with the
// Stage's pause state at the time it ran.
type hookScene struct {
	name  string
	rec   *recorder
	stage *Stage

	teardownErr error
	setupErr    error
	startErr    error

	setupGate chan struct{} // if set, Setup blocks until the channel closes
}

func (scene *hookScene) Name() string { return scene.name }

func (scene *hookScene) Teardown(ctx context.Context) error {
	scene.rec.add(fmt.Sprintf("teardown:%s paused=%v", scene.name, scene.stage.Paused()))
	return scene.teardownErr
}

func (scene *hookScene) Setup(ctx context.Context, params Params) error {
	if scene.setupGate != nil {
		<-scene.setupGate
	}
	scene.rec.add(fmt.Sprintf("setup:%s params=%d paused=%v", scene.name, len(params), scene.stage.Paused()))
	return scene.setupErr
}

func (scene *hookScene) Start(ctx context.Context) error {
	scene.rec.add(fmt.Sprintf("start:%s paused=%v", scene.name, scene.stage.Paused()))
	return scene.startErr
}

// bareScene implements no hooks at all.
type bareScene struct {
	name string
}

func (scene bareScene) Name() string { return scene.name }

// pumpStage drives the Stage from a background goroutine the way a game loop would, so the
// pipeline's fades, ticks, and removal confirmations complete. Stops at test cleanup.
func pumpStage(t *testing.T, stage *Stage) {
	t.Helper()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				stage.Update(0.25)
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		<-done
	})
}

func newTestDirector(t *testing.T, options *Options) (*Director, *recorder) {
	t.Helper()
	if options == nil {
		options = DefaultOptions()
	}
	options.FadeDuration = 0.05
	director := NewDirector(options)
	pumpStage(t, director.Stage())

	rec := &recorder{}
	for _, name := range []string{EventTeardownDone, EventSetupDone, EventStartDone} {
		name := name
		director.Events().On(name, func(event Event) {
			rec.add("event:" + name)
		})
	}
	return director, rec
}

func waitFor(t *testing.T, future *Future) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return future.Wait(ctx)
}

func TestFirstTransitionSkipsTeardown(t *testing.T) {
	director, rec := newTestDirector(t, nil)
	scene := &hookScene{name: "menu", rec: rec, stage: director.Stage()}

	err := waitFor(t, director.Transition(context.Background(), SceneTarget(scene), Params{"a", "b"}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"setup:menu params=2 paused=true",
		"event:" + EventSetupDone,
		"start:menu paused=false",
		"event:" + EventStartDone,
	}, rec.list())

	assert.Equal(t, scene, director.Stage().Scene())
	assert.False(t, director.Stage().Paused())
	assert.Zero(t, director.Stage().Fader().Alpha())
}

func TestTransitionReplacesOldScene(t *testing.T) {
	director, rec := newTestDirector(t, nil)
	first := &hookScene{name: "menu", rec: rec, stage: director.Stage()}
	second := &hookScene{name: "level1", rec: rec, stage: director.Stage()}

	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(first), nil)))
	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(second), nil)))

	assert.Equal(t, []string{
		"setup:menu params=0 paused=true",
		"event:" + EventSetupDone,
		"start:menu paused=false",
		"event:" + EventStartDone,
		"teardown:menu paused=true",
		"event:" + EventTeardownDone,
		"setup:level1 params=0 paused=true",
		"event:" + EventSetupDone,
		"start:level1 paused=false",
		"event:" + EventStartDone,
	}, rec.list())

	assert.Equal(t, second, director.Stage().Scene())
	assert.False(t, director.Stage().Paused())
}

func TestHooklessSceneRunsSamePipeline(t *testing.T) {
	director, rec := newTestDirector(t, nil)

	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(bareScene{name: "splash"}), nil)))
	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(bareScene{name: "menu"}), nil)))

	// Hooks are absent, but every completion event still fires in order.
	assert.Equal(t, []string{
		"event:" + EventSetupDone,
		"event:" + EventStartDone,
		"event:" + EventTeardownDone,
		"event:" + EventSetupDone,
		"event:" + EventStartDone,
	}, rec.list())
	assert.Equal(t, bareScene{name: "menu"}, director.Stage().Scene())
	assert.False(t, director.Stage().Paused())
}

func TestReentrantTransitionRejected(t *testing.T) {
	director, rec := newTestDirector(t, nil)
	gate := make(chan struct{})
	scene := &hookScene{name: "menu", rec: rec, stage: director.Stage(), setupGate: gate}

	first := director.Transition(context.Background(), SceneTarget(scene), nil)

	// The first transition is now blocked inside Setup; a second call must be rejected
	// without disturbing it.
	second := director.Transition(context.Background(), SceneTarget(bareScene{name: "other"}), nil)
	assert.ErrorIs(t, waitFor(t, second), ErrTransitionInProgress)

	close(gate)
	require.NoError(t, waitFor(t, first))
	assert.Equal(t, scene, director.Stage().Scene())
}

func TestInvalidTargetRejectedBeforePipeline(t *testing.T) {
	director, rec := newTestDirector(t, nil)

	err := waitFor(t, director.Transition(context.Background(), Target{}, nil))
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// Nothing ran: no events, no pause.
	assert.Empty(t, rec.list())
	assert.False(t, director.Stage().Paused())
	assert.Nil(t, director.Stage().Scene())
}

func TestHookFailureStopsPipeline(t *testing.T) {
	director, rec := newTestDirector(t, nil)
	hookErr := errors.New("boom")
	scene := &hookScene{name: "menu", rec: rec, stage: director.Stage(), setupErr: hookErr}

	err := waitFor(t, director.Transition(context.Background(), SceneTarget(scene), nil))
	require.ErrorIs(t, err, hookErr)

	// The pipeline stopped at setup: the scene is attached but setup-done never fired and
	// the stage is still paused. The caller must treat this state as corrupt.
	assert.Equal(t, []string{"setup:menu params=0 paused=true"}, rec.list())
	assert.True(t, director.Stage().Paused())
}

func TestLoadFailureSurfacesTypedError(t *testing.T) {
	options := DefaultOptions()
	options.FS = fstest.MapFS{}
	director, rec := newTestDirector(t, options)

	err := waitFor(t, director.Transition(context.Background(), IDTarget("missing"), nil))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "scenes/missing/missing.glb", loadErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// No partial state: the slot was never touched and no completion events fired. The stage
	// is left paused; a follow-up transition recovers it.
	assert.Empty(t, rec.list())
	assert.Nil(t, director.Stage().Scene())
	assert.True(t, director.Stage().Paused())

	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(bareScene{name: "fallback"}), nil)))
	assert.False(t, director.Stage().Paused())
	assert.Equal(t, bareScene{name: "fallback"}, director.Stage().Scene())
}

func TestCanceledContextStopsAtSuspensionPoint(t *testing.T) {
	// No stage pump here: the fade-out can never finish, so the canceled context is what
	// lets the pipeline out.
	director := NewDirector(&Options{FadeDuration: 1})
	rec := &recorder{}
	director.Events().On(EventSetupDone, func(Event) { rec.add("event:" + EventSetupDone) })

	director.Stage().attach(bareScene{name: "menu"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitFor(t, director.Transition(ctx, SceneTarget(bareScene{name: "level1"}), nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.list())
}

func TestTransitionByIdentifier(t *testing.T) {
	options := DefaultOptions()
	options.FS = fstest.MapFS{
		"scenes/menu/menu.glb": &fstest.MapFile{Data: []byte(testGLTFDocument)},
	}
	director, rec := newTestDirector(t, options)

	var received *Template
	director.Loader().RegisterScene("menu", func(template *Template) Scene {
		received = template
		return &hookScene{name: template.Name, rec: rec, stage: director.Stage()}
	})

	require.NoError(t, waitFor(t, director.Transition(context.Background(), IDTarget("menu"), Params{})))

	require.NotNil(t, received)
	assert.Equal(t, "menu", received.Name)
	assert.NotNil(t, received.Root().FindNode("Spawn"))

	assert.Equal(t, []string{
		"setup:menu params=0 paused=true",
		"event:" + EventSetupDone,
		"start:menu paused=false",
		"event:" + EventStartDone,
	}, rec.list())
	assert.Equal(t, "menu", director.Stage().Scene().Name())
}

func TestCallbacksFireAroundTransition(t *testing.T) {
	rec := &recorder{}
	options := DefaultOptions()
	options.Callbacks = DirectorCallbacks{
		OnTransitionStart: func(target Target) { rec.add("start:" + target.String()) },
		OnTransitionEnd: func(scene Scene, err error) {
			rec.add(fmt.Sprintf("end:%s err=%v", scene.Name(), err))
		},
	}
	director, _ := newTestDirector(t, options)

	require.NoError(t, waitFor(t, director.Transition(context.Background(), SceneTarget(bareScene{name: "menu"}), nil)))

	assert.Equal(t, []string{"start:scene(menu)", "end:menu err=<nil>"}, rec.list())
}
