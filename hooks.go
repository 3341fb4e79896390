package sceneshift

import (
	"context"
	"fmt"
)

// The hook invokers below are where the optional-capability checks live: each one type-asserts
// the Scene against the relevant hook interface, awaits the hook if it's there, and is a no-op
// otherwise. Hook errors are wrapped with the hook and scene names so a failed transition's
// error says exactly where the pipeline stopped.

func invokeTeardown(ctx context.Context, scene Scene) error {
	teardowner, ok := scene.(Teardowner)
	if !ok {
		return nil
	}
	if err := teardowner.Teardown(ctx); err != nil {
		return fmt.Errorf("teardown hook of scene %q: %w", scene.Name(), err)
	}
	return nil
}

func invokeSetup(ctx context.Context, scene Scene, params Params) error {
	setupper, ok := scene.(Setupper)
	if !ok {
		return nil
	}
	if err := setupper.Setup(ctx, params); err != nil {
		return fmt.Errorf("setup hook of scene %q: %w", scene.Name(), err)
	}
	return nil
}

func invokeStart(ctx context.Context, scene Scene) error {
	starter, ok := scene.(Starter)
	if !ok {
		return nil
	}
	if err := starter.Start(ctx); err != nil {
		return fmt.Errorf("start hook of scene %q: %w", scene.Name(), err)
	}
	return nil
}
