// Package attr lexes and validates the [[...]] field annotations that drive
// schema generation.
//
// The attribute grammar is a closed set: every recognized attribute is either a
// flag (primary_key, autoincrement, unique) or requires a value (foreign_key,
// default, name). Anything else is rejected.
package attr

// Kind identifies a recognized attribute.
type Kind int

const (
	PrimaryKey Kind = iota
	AutoIncrement
	ForeignKey
	Name
	Unique
	Default

	numKinds
)

// kindDef describes how an attribute may be written.
type kindDef struct {
	name          string
	requiresValue bool
}

// kinds is indexed by Kind. Order is the order used in diagnostics.
var kinds = [numKinds]kindDef{
	PrimaryKey:    {name: "primary_key"},
	AutoIncrement: {name: "autoincrement"},
	ForeignKey:    {name: "foreign_key", requiresValue: true},
	Name:          {name: "name", requiresValue: true},
	Unique:        {name: "unique"},
	Default:       {name: "default", requiresValue: true},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		m[kinds[k].name] = k
	}
	return m
}()

// String returns the attribute name as written in source.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kinds[k].name
}

// RequiresValue reports whether the attribute must carry a value.
func (k Kind) RequiresValue() bool {
	if k < 0 || k >= numKinds {
		return false
	}
	return kinds[k].requiresValue
}

// Lookup returns the Kind for an attribute name.
func Lookup(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Names returns all recognized attribute names in declaration order.
func Names() []string {
	names := make([]string, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		names = append(names, kinds[k].name)
	}
	return names
}
