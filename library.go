package sceneshift

// Library represents a collection of scene Templates as loaded from a single resource file
// (.gltf / .glb). A file usually holds one scene, but modelers can export several; the one that
// was open when the file was exported becomes the Library's default.
type Library struct {
	Templates       map[string]*Template // A map of Templates to their names
	DefaultTemplate *Template            // The scene that was marked default when the file was exported
}

// NewLibrary creates a new, empty Library.
func NewLibrary() *Library {
	return &Library{
		Templates: map[string]*Template{},
	}
}

// FindTemplate searches the Library for the Template with the provided name. If a Template
// with the given name isn't found, FindTemplate will return nil.
func (lib *Library) FindTemplate(name string) *Template {
	return lib.Templates[name]
}

// AddTemplate adds a new empty Template of the given name to the Library and returns it. The
// first Template added becomes the Library's default until the source file says otherwise.
func (lib *Library) AddTemplate(name string) *Template {
	template := NewTemplate(name, nil)
	lib.Templates[name] = template
	if lib.DefaultTemplate == nil {
		lib.DefaultTemplate = template
	}
	return template
}
