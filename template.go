package sceneshift

// Template is an instantiable scene blueprint, as parsed from a resource file. A Template can
// be instantiated any number of times; each instantiation deep-clones the blueprint's content
// graph, so instances never share Nodes with the Template or with each other.
type Template struct {
	Name       string
	root       *Node
	properties *Properties
}

// NewTemplate creates a Template with the given name and content graph root. Passing a nil
// root creates an empty graph with a root Node named after the Template.
func NewTemplate(name string, root *Node) *Template {
	if root == nil {
		root = NewNode(name)
	}
	return &Template{
		Name:       name,
		root:       root,
		properties: NewProperties(),
	}
}

// Root returns the blueprint's content graph root. Treat it as read-only; mutate instances
// created through Instantiate instead.
func (template *Template) Root() *Node {
	return template.root
}

// Properties returns the scene-level Properties exported on the Template (the source scene's
// custom data, as opposed to any individual node's).
func (template *Template) Properties() *Properties {
	return template.properties
}

// Instantiate creates a fresh TemplateScene from the blueprint.
func (template *Template) Instantiate() *TemplateScene {
	return &TemplateScene{
		name:     template.Name,
		root:     template.root.Clone(),
		template: template,
	}
}

// TemplateScene is the plain Scene a Template produces when no scene constructor is registered
// for it: a named content graph with no lifecycle hooks. Games that need hooks register a
// SceneConstructor with the Loader to wrap the Template in their own Scene type instead.
type TemplateScene struct {
	name     string
	root     *Node
	template *Template
}

// Name returns the scene's name.
func (scene *TemplateScene) Name() string {
	return scene.name
}

// Root returns the scene's own clone of the content graph.
func (scene *TemplateScene) Root() *Node {
	return scene.root
}

// Template returns the Template this scene was instantiated from.
func (scene *TemplateScene) Template() *Template {
	return scene.template
}
