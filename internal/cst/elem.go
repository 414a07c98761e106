package cst

// Elem is a plain in-memory Node.
type Elem struct {
	Type    string
	Content string
	Row     int // 1-based
	Kids    []*Elem
	Fields  map[string]*Elem
}

// E builds an Elem with the given kind, text and children.
func E(kind, text string, kids ...*Elem) *Elem {
	return &Elem{Type: kind, Content: text, Kids: kids}
}

// Set binds child to a field name and appends it to the children.
func (e *Elem) Set(field string, child *Elem) *Elem {
	if e.Fields == nil {
		e.Fields = make(map[string]*Elem)
	}
	e.Fields[field] = child
	e.Kids = append(e.Kids, child)
	return e
}

// Add appends unnamed children.
func (e *Elem) Add(kids ...*Elem) *Elem {
	e.Kids = append(e.Kids, kids...)
	return e
}

// At sets the source line.
func (e *Elem) At(line int) *Elem {
	e.Row = line
	return e
}

func (e *Elem) Kind() string { return e.Type }
func (e *Elem) Text() string { return e.Content }
func (e *Elem) Line() int    { return e.Row }

func (e *Elem) Field(name string) Node {
	c, ok := e.Fields[name]
	if !ok || c == nil {
		return nil
	}
	return c
}

func (e *Elem) Children() []Node {
	out := make([]Node, len(e.Kids))
	for i, k := range e.Kids {
		out[i] = k
	}
	return out
}
