package value

// Map is an insertion-ordered string-keyed map. Setting an existing key
// replaces its value but keeps the key's original position.
type Map struct {
	keys   []string
	values []Value
	index  map[string]int
}

func newMap(capacity int) *Map {
	return &Map{
		keys:   make([]string, 0, capacity),
		values: make([]Value, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

func (m *Map) set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.values[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, v)
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.values[i], true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// At returns the i-th entry in insertion order. Like slice indexing it panics
// when i is out of range, and a nil Map has no entries, so At always panics
// on nil. Check Len first.
func (m *Map) At(i int) (string, Value) {
	return m.keys[i], m.values[i]
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for i, k := range m.keys {
		if !fn(k, m.values[i]) {
			return
		}
	}
}

func (m *Map) equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, k := range m.keys {
		ov, ok := o.Get(k)
		if !ok || !m.values[i].Equal(ov) {
			return false
		}
	}
	return true
}

// MapBuilder assembles a Map. A builder must not be used after Build.
type MapBuilder struct {
	m *Map
}

// NewMapBuilder returns a builder sized for capacity entries.
func NewMapBuilder(capacity int) *MapBuilder {
	return &MapBuilder{m: newMap(capacity)}
}

// Set stores v under key; the last assignment to a key wins.
func (b *MapBuilder) Set(key string, v Value) *MapBuilder {
	b.m.set(key, v)
	return b
}

// Build returns the assembled map as a Value.
func (b *MapBuilder) Build() Value {
	m := b.m
	b.m = nil
	return Object(m)
}

// Pair is one key/value entry for MapOf.
type Pair struct {
	Key   string
	Value Value
}

// MapOf builds a map value from pairs in order.
func MapOf(pairs ...Pair) Value {
	b := NewMapBuilder(len(pairs))
	for _, p := range pairs {
		b.Set(p.Key, p.Value)
	}
	return b.Build()
}
