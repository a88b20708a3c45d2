package gamestate

// VolatileStorage is the in-memory key/value primitive backing entity
// records and the component registry. All operations are O(1) expected.
type VolatileStorage[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Has(key K) bool
	Len() int
	Keys() []K
	Clear()
}

var _ VolatileStorage[string, any] = &MapStorage[string, any]{}

type MapStorage[K comparable, V any] struct {
	internalMap map[K]V
}

func NewMapStorage[K comparable, V any]() *MapStorage[K, V] {
	return &MapStorage[K, V]{
		internalMap: make(map[K]V),
	}
}

func (m *MapStorage[K, V]) Get(key K) (V, bool) {
	v, ok := m.internalMap[key]
	return v, ok
}

func (m *MapStorage[K, V]) Set(key K, value V) {
	m.internalMap[key] = value
}

func (m *MapStorage[K, V]) Delete(key K) {
	delete(m.internalMap, key)
}

func (m *MapStorage[K, V]) Has(key K) bool {
	_, ok := m.internalMap[key]
	return ok
}

func (m *MapStorage[K, V]) Len() int {
	return len(m.internalMap)
}

func (m *MapStorage[K, V]) Keys() []K {
	acc := make([]K, 0, len(m.internalMap))
	for k := range m.internalMap {
		acc = append(acc, k)
	}
	return acc
}

func (m *MapStorage[K, V]) Clear() {
	m.internalMap = make(map[K]V)
}
