package sceneshift

import (
	"bytes"
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
)

// LoadLibraryFile loads a .gltf or .glb file from the filepath given, parsing each scene it
// contains into an instantiable Template. Only the node hierarchy, node names, and custom
// "extras" data are read - sceneshift is a transition orchestrator, not a renderer, so meshes,
// materials, and the rest of the file's visual content are left to whatever actually draws the
// scene. LoadLibraryFile will return a Library, and an error if the process fails.
func LoadLibraryFile(path string) (*Library, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return LoadLibraryData(fileData)

}

// LoadLibraryData loads a .gltf or .glb file from the byte data given. See LoadLibraryFile.
func LoadLibraryData(data []byte) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, err
	}

	library := NewLibrary()

	// Build the content graph for every node in the file up front; the scenes then pick up
	// their root-level nodes from it.

	nodes := make([]*Node, len(doc.Nodes))

	for i, gltfNode := range doc.Nodes {
		node := NewNode(gltfNode.Name)
		applyExtras(node.Properties(), gltfNode.Extras)
		nodes[i] = node
	}

	for i, gltfNode := range doc.Nodes {
		for _, childIndex := range gltfNode.Children {
			nodes[i].AddChildren(nodes[int(childIndex)])
		}
	}

	templates := make([]*Template, len(doc.Scenes))

	for i, s := range doc.Scenes {

		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Scene %d", i)
		}

		template := library.AddTemplate(name)
		applyExtras(template.Properties(), s.Extras)

		// Parent all of the scene's top-level objects to the template root.
		for _, n := range s.Nodes {
			template.Root().AddChildren(nodes[int(n)])
		}

		templates[i] = template

	}

	if doc.Scene != nil && int(*doc.Scene) < len(templates) {
		library.DefaultTemplate = templates[int(*doc.Scene)]
	}

	return library, nil

}

func applyExtras(props *Properties, extras any) {
	if dataMap, isMap := extras.(map[string]interface{}); isMap {
		for name, value := range dataMap {
			props.Get(name).Set(value)
		}
	}
}
