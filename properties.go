package sceneshift

// Properties is an unordered set of property names to values, representing a means of identifying
// content Nodes or carrying data on them. When a scene is loaded from a glTF file, each node's
// custom "extras" data becomes its Properties.
type Properties struct {
	props map[string]*Property
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]*Property{}}
}

func (props *Properties) Clone() *Properties {
	newProps := NewProperties()
	for k, v := range props.props {
		newProps.Get(k).Set(v.Value)
	}
	return newProps
}

// Clear clears the Properties object of all properties.
func (props *Properties) Clear() {
	props.props = map[string]*Property{}
}

// Remove removes the property of the specified name from the Properties object.
func (props *Properties) Remove(propName string) {
	delete(props.props, propName)
}

// Has returns true if the Properties object has properties by all of the names specified, and false otherwise.
func (props *Properties) Has(propNames ...string) bool {
	for _, p := range propNames {
		if _, exists := props.props[p]; !exists {
			return false
		}
	}
	return true
}

// Count returns the number of properties in the Properties object.
func (props *Properties) Count() int {
	return len(props.props)
}

// Get returns the value associated with the specified property name. If a property with the
// passed name (propName) doesn't exist, Get will create it with a nil value.
func (props *Properties) Get(propName string) *Property {
	if _, ok := props.props[propName]; !ok {
		props.props[propName] = &Property{}
	}
	return props.props[propName]
}

// Property represents a game property on a content Node or other resource.
type Property struct {
	Value any
}

// Set sets the property's value to the given value.
func (prop *Property) Set(value any) {
	prop.Value = value
}

// IsBool returns true if the Property is a boolean value.
func (prop *Property) IsBool() bool {
	_, ok := prop.Value.(bool)
	return ok
}

// AsBool returns the value associated with the Property as a bool.
// Note that this does not sanity check to ensure the Property is a bool first.
func (prop *Property) AsBool() bool {
	return prop.Value.(bool)
}

// IsString returns true if the Property is a string.
func (prop *Property) IsString() bool {
	_, ok := prop.Value.(string)
	return ok
}

// AsString returns the value associated with the Property as a string.
// Note that this does not sanity check to ensure the Property is a string first.
func (prop *Property) AsString() string {
	return prop.Value.(string)
}

// IsFloat64 returns true if the Property is a float64.
func (prop *Property) IsFloat64() bool {
	_, ok := prop.Value.(float64)
	return ok
}

// AsFloat64 returns the value associated with the Property as a float64.
// Note that this does not sanity check to ensure the Property is a float64 first.
func (prop *Property) AsFloat64() float64 {
	return prop.Value.(float64)
}

// IsInt returns true if the Property is an int.
func (prop *Property) IsInt() bool {
	_, ok := prop.Value.(int)
	return ok
}

// AsInt returns the value associated with the Property as an int.
// Note that this does not sanity check to ensure the Property is an int first.
func (prop *Property) AsInt() int {
	return prop.Value.(int)
}
