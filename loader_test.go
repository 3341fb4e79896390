package sceneshift

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoaderFS() fstest.MapFS {
	return fstest.MapFS{
		"scenes/menu/menu.glb":    &fstest.MapFile{Data: []byte(testGLTFDocument)},
		"custom/path/level1.gltf": &fstest.MapFile{Data: []byte(testGLTFDocument)},
	}
}

func TestExpandScenePath(t *testing.T) {
	options := DefaultOptions()
	options.Aliases = map[string]string{"title": "menu"}
	loader := NewLoader(options)

	tests := []struct {
		id       string
		expected string
	}{
		{"level1", "scenes/level1/level1.glb"},
		{"dir/custom.glb", "dir/custom.glb"},      // already a path
		{"custom.gltf", "custom.gltf"},            // already has an extension
		{"title", "scenes/menu/menu.glb"},          // alias, then convention
		{"some/nested/dir/x", "some/nested/dir/x"}, // separator wins even without extension
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, loader.ExpandScenePath(test.id), "id %q", test.id)
	}
}

func TestResolveSceneTargetImmediate(t *testing.T) {
	loader := NewLoader(nil)
	scene := bareScene{name: "menu"}

	result := <-loader.Resolve(SceneTarget(scene))
	require.NoError(t, result.Err)
	assert.Equal(t, scene, result.Scene)
}

func TestResolveTemplateTargetInstantiates(t *testing.T) {
	loader := NewLoader(nil)
	template := NewTemplate("menu", nil)

	result := <-loader.Resolve(TemplateTarget(template))
	require.NoError(t, result.Err)

	templateScene, ok := result.Scene.(*TemplateScene)
	require.True(t, ok)
	assert.Equal(t, "menu", templateScene.Name())
	assert.Equal(t, template, templateScene.Template())
	// Instances clone the graph; they never share nodes with the blueprint.
	assert.NotSame(t, template.Root(), templateScene.Root())
}

func TestResolveInvalidTargets(t *testing.T) {
	loader := NewLoader(nil)

	for _, target := range []Target{{}, SceneTarget(nil), TemplateTarget(nil)} {
		result := <-loader.Resolve(target)
		assert.ErrorIs(t, result.Err, ErrInvalidTarget, "target %s", target)
	}
}

func TestResolveIDTargetLoads(t *testing.T) {
	options := DefaultOptions()
	options.FS = testLoaderFS()
	loader := NewLoader(options)

	result := <-loader.Resolve(IDTarget("menu"))
	require.NoError(t, result.Err)
	assert.Equal(t, "menu", result.Scene.Name())

	// A fully qualified identifier skips the path convention entirely.
	result = <-loader.Resolve(IDTarget("custom/path/level1.gltf"))
	require.NoError(t, result.Err)
	assert.Equal(t, "menu", result.Scene.Name())
}

func TestLoadTemplateCaches(t *testing.T) {
	options := DefaultOptions()
	options.FS = testLoaderFS()
	loader := NewLoader(options)

	first, err := loader.LoadTemplate("menu")
	require.NoError(t, err)
	second, err := loader.LoadTemplate("menu")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadTemplateFailure(t *testing.T) {
	options := DefaultOptions()
	options.FS = fstest.MapFS{}
	loader := NewLoader(options)

	_, err := loader.LoadTemplate("missing")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "scenes/missing/missing.glb", loadErr.Path)
}

func TestRegisterSceneConstructor(t *testing.T) {
	options := DefaultOptions()
	options.FS = testLoaderFS()
	loader := NewLoader(options)

	loader.RegisterScene("menu", func(template *Template) Scene {
		return bareScene{name: "constructed:" + template.Name}
	})

	result := <-loader.Resolve(IDTarget("menu"))
	require.NoError(t, result.Err)
	assert.Equal(t, bareScene{name: "constructed:menu"}, result.Scene)

	// Unregistering falls back to the plain TemplateScene.
	loader.RegisterScene("menu", nil)
	result = <-loader.Resolve(IDTarget("menu"))
	require.NoError(t, result.Err)
	_, isTemplateScene := result.Scene.(*TemplateScene)
	assert.True(t, isTemplateScene)
}

func TestPreloadWarmsCache(t *testing.T) {
	options := DefaultOptions()
	options.FS = testLoaderFS()
	loader := NewLoader(options)

	loader.Preload("menu")

	require.Eventually(t, func() bool {
		loader.mu.Lock()
		defer loader.mu.Unlock()
		_, ok := loader.cache["scenes/menu/menu.glb"]
		return ok
	}, 2*time.Second, time.Millisecond)

	// The later load hits the warmed cache and hands back the same Template.
	template, err := loader.LoadTemplate("menu")
	require.NoError(t, err)
	loader.mu.Lock()
	cached := loader.cache["scenes/menu/menu.glb"]
	loader.mu.Unlock()
	assert.Same(t, cached, template)
}
