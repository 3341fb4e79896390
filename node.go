package sceneshift

import "strings"

// Node is a named element in a loaded scene's content graph. Nodes form a simple tree mirroring
// the node hierarchy of the source resource file, and carry any custom data exported on them as
// Properties. sceneshift doesn't interpret Nodes beyond this; they exist so that a game can find
// the content it cares about in a freshly instantiated scene (spawn markers, trigger volumes,
// UI anchors, and so on).
type Node struct {
	name       string
	parent     *Node
	children   []*Node
	properties *Properties
}

// NewNode returns a new Node with the given name.
func NewNode(name string) *Node {
	return &Node{
		name:       name,
		children:   []*Node{},
		properties: NewProperties(),
	}
}

// Name returns the Node's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the Node's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() *Node {
	return node.parent
}

// Root returns the root node in this tree by traversing this node's hierarchy of parents upwards.
func (node *Node) Root() *Node {
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// Children returns the Node's children.
func (node *Node) Children() []*Node {
	return append([]*Node{}, node.children...)
}

// AddChildren parents the provided children Nodes to the calling Node. If the children are
// already parented to other Nodes, they are unparented before doing so.
func (node *Node) AddChildren(children ...*Node) {
	for _, child := range children {
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		child.parent = node
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this Node.
func (node *Node) RemoveChildren(children ...*Node) {
	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.parent = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}
}

// Get searches the Node's hierarchy using a string to find a specified Node. The path is in the
// format of names of Nodes, separated by forward slashes ('/'), and is relative to the Node you
// use to call Get. As an example, if you had a Spawn node parented to a Markers node parented to
// the root, root.Get("Markers/Spawn") would return it. Get returns nil if no Node is found at
// the given path.
func (node *Node) Get(path string) *Node {
	current := node
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var next *Node
		for _, child := range current.children {
			if child.name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// FindNode searches the Node's tree recursively (depth-first) to find the first Node with the
// provided name, including the calling Node itself. If no Node is found, FindNode returns nil.
func (node *Node) FindNode(name string) *Node {
	if node.name == name {
		return node
	}
	for _, child := range node.children {
		if found := child.FindNode(name); found != nil {
			return found
		}
	}
	return nil
}

// Properties returns the Node's game Properties.
func (node *Node) Properties() *Properties {
	return node.properties
}

// Clone returns a deep clone of the Node and its children. The clone is unparented.
func (node *Node) Clone() *Node {
	newNode := NewNode(node.name)
	newNode.properties = node.properties.Clone()
	for _, child := range node.children {
		newNode.AddChildren(child.Clone())
	}
	return newNode
}
