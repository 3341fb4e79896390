package sceneshift

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
)

// SceneConstructor builds a game-specific Scene from a loaded Template. Registering one with
// Loader.RegisterScene is how a game attaches behavior (lifecycle hooks, gameplay state) to
// scenes loaded by identifier - the Loader hands the constructor the Template and the
// constructor returns whatever Scene type the game implements for it.
type SceneConstructor func(template *Template) Scene

// LoadResult carries the outcome of resolving a Target: either a valid Scene, or the error
// that stopped the load. Exactly one of the two is set.
type LoadResult struct {
	Scene Scene
	Err   error
}

// Loader resolves transition Targets into Scenes. Already-built scenes and preloaded templates
// resolve immediately; symbolic identifiers are expanded to a resource path and decoded in a
// background goroutine, with completion delivered through the channel Resolve returns - the
// calling goroutine is never blocked by the decode itself.
//
// Loaded Templates are cached by expanded path, so transitioning to the same identifier twice
// decodes the file once. Preload can warm the cache ahead of time.
type Loader struct {
	basePath    string
	entrySuffix string
	fsys        fs.FS
	aliases     map[string]string
	logger      Logger

	mu           sync.Mutex
	cache        map[string]*Template
	constructors map[string]SceneConstructor
}

// NewLoader creates a Loader from the given Options. Passing nil uses DefaultOptions.
func NewLoader(options *Options) *Loader {
	if options == nil {
		options = DefaultOptions()
	}
	basePath := options.BasePath
	if basePath == "" {
		basePath = "scenes"
	}
	entrySuffix := options.EntrySuffix
	if entrySuffix == "" {
		entrySuffix = ".glb"
	}
	logger := options.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	aliases := map[string]string{}
	for name, target := range options.Aliases {
		aliases[name] = target
	}
	return &Loader{
		basePath:     basePath,
		entrySuffix:  entrySuffix,
		fsys:         options.FS,
		aliases:      aliases,
		logger:       logger,
		cache:        map[string]*Template{},
		constructors: map[string]SceneConstructor{},
	}
}

// ExpandScenePath expands a symbolic scene identifier into the resource path it loads from.
// Aliases apply first; then, if the identifier already names a path (it contains a path
// separator or a file extension), it passes through unchanged, and otherwise it expands to
// "<BasePath>/<id>/<id><EntrySuffix>".
func (loader *Loader) ExpandScenePath(id string) string {
	if alias, ok := loader.aliases[id]; ok {
		id = alias
	}
	if strings.ContainsRune(id, '/') || path.Ext(id) != "" {
		return id
	}
	return path.Join(loader.basePath, id, id+loader.entrySuffix)
}

// RegisterScene registers a SceneConstructor for Templates with the given name. When the
// Loader instantiates a Template of that name (from an IDTarget or TemplateTarget), it calls
// the constructor instead of producing a plain TemplateScene. Registering nil removes the
// constructor.
func (loader *Loader) RegisterScene(name string, constructor SceneConstructor) {
	loader.mu.Lock()
	defer loader.mu.Unlock()
	if constructor == nil {
		delete(loader.constructors, name)
		return
	}
	loader.constructors[name] = constructor
}

// Resolve resolves a Target into a Scene. It returns immediately; the result is delivered on
// the returned channel exactly once. SceneTargets and TemplateTargets are delivered without
// suspension; IDTargets load in the background first.
func (loader *Loader) Resolve(target Target) <-chan LoadResult {

	result := make(chan LoadResult, 1)

	switch target.kind {

	case targetScene:
		if target.scene == nil {
			result <- LoadResult{Err: ErrInvalidTarget}
			break
		}
		result <- LoadResult{Scene: target.scene}

	case targetTemplate:
		if target.template == nil {
			result <- LoadResult{Err: ErrInvalidTarget}
			break
		}
		result <- LoadResult{Scene: loader.instantiate(target.template)}

	case targetID:
		go func() {
			template, err := loader.LoadTemplate(target.id)
			if err != nil {
				result <- LoadResult{Err: err}
				return
			}
			result <- LoadResult{Scene: loader.instantiate(template)}
		}()

	default:
		result <- LoadResult{Err: ErrInvalidTarget}

	}

	return result

}

// LoadTemplate expands the identifier, then reads and decodes its resource file, returning the
// file's default Template. Results are cached by expanded path; a cache hit returns the same
// Template without touching the file again. LoadTemplate blocks until the load completes -
// it's what Resolve runs in the background, exposed for games that want to load synchronously.
func (loader *Loader) LoadTemplate(id string) (*Template, error) {

	scenePath := loader.ExpandScenePath(id)

	loader.mu.Lock()
	if cached, ok := loader.cache[scenePath]; ok {
		loader.mu.Unlock()
		return cached, nil
	}
	loader.mu.Unlock()

	loader.logger.Debug("loading scene resource", "scene", id, "path", scenePath)

	data, err := loader.readFile(scenePath)
	if err != nil {
		return nil, &LoadError{Path: scenePath, Err: err}
	}

	library, err := LoadLibraryData(data)
	if err != nil {
		return nil, &LoadError{Path: scenePath, Err: err}
	}

	template := library.DefaultTemplate
	if template == nil {
		return nil, &LoadError{Path: scenePath, Err: ErrTemplateNotFound}
	}

	loader.mu.Lock()
	loader.cache[scenePath] = template
	loader.mu.Unlock()

	return template, nil

}

// Preload begins loading the identified scene's Template in the background, so a later
// transition to it finds the cache warm. Failures are logged and otherwise ignored; the
// transition that eventually uses the identifier will surface the error itself.
func (loader *Loader) Preload(id string) {
	go func() {
		if _, err := loader.LoadTemplate(id); err != nil {
			loader.logger.Warn("scene preload failed", "scene", id, "error", err)
		}
	}()
}

func (loader *Loader) instantiate(template *Template) Scene {
	loader.mu.Lock()
	constructor := loader.constructors[template.Name]
	loader.mu.Unlock()
	if constructor != nil {
		return constructor(template)
	}
	return template.Instantiate()
}

func (loader *Loader) readFile(scenePath string) ([]byte, error) {
	if loader.fsys != nil {
		return fs.ReadFile(loader.fsys, scenePath)
	}
	return os.ReadFile(scenePath)
}
