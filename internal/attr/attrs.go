package attr

// Attrs is an insertion-ordered mapping of attribute name to value.
// Flags carry an empty value.
//
// Order matters: diagnostics report the first offending entry and the
// metadata header lists surviving attributes in annotation order.
type Attrs struct {
	keys   []string
	values map[string]string
}

// New returns an empty Attrs.
func New() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// Set stores value under key. Overwriting an existing key keeps its position.
func (a *Attrs) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether the key is present.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// HasKind reports whether the attribute of kind k is present.
func (a *Attrs) HasKind(k Kind) bool {
	return a.Has(k.String())
}

// Pop removes key and returns its value.
func (a *Attrs) Pop(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	if !ok {
		return "", false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the keys in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of entries.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// clone returns an independent copy.
func (a *Attrs) clone() *Attrs {
	c := New()
	for _, k := range a.Keys() {
		c.Set(k, a.values[k])
	}
	return c
}

// equal reports whether both mappings hold the same entries in the same order.
func (a *Attrs) equal(b *Attrs) bool {
	if a.Len() != b.Len() {
		return false
	}
	ak, bk := a.Keys(), b.Keys()
	for i := range ak {
		if ak[i] != bk[i] || a.values[ak[i]] != b.values[bk[i]] {
			return false
		}
	}
	return true
}
