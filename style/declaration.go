package style

// Property is a single canonical property and its value.
type Property struct {
	Name  string
	Value string
}

// Declaration is an ordered set of canonical properties. The zero value is
// an empty declaration. Setting an existing property replaces its value in
// place, keeping the position of the first occurrence.
type Declaration struct {
	props []Property
}

// NewDeclaration builds a declaration from name/value pairs, canonicalizing
// names the same way stylesheets are loaded.
func NewDeclaration(pairs ...string) Declaration {
	var d Declaration
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Set(pairs[i], pairs[i+1])
	}
	return d
}

// Set stores value under the canonical form of name.
func (d *Declaration) Set(name, value string) {
	name = Canonical(name)
	for i := range d.props {
		if d.props[i].Name == name {
			d.props[i].Value = value
			return
		}
	}
	d.props = append(d.props, Property{Name: name, Value: value})
}

// Get returns the value of a canonical property.
func (d Declaration) Get(name string) (string, bool) {
	for _, p := range d.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether the property is present.
func (d Declaration) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Len returns the number of properties.
func (d Declaration) Len() int {
	return len(d.props)
}

// Properties returns a copy of the properties in declaration order.
func (d Declaration) Properties() []Property {
	out := make([]Property, len(d.props))
	copy(out, d.props)
	return out
}
