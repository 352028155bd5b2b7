package repo

import "sync"

// memTable is a newest-first list of records guarded by a RWMutex.
// It backs every in-memory repo. Records are cloned on the way in and out so
// callers can never alias the stored slices.
type memTable[T any, K comparable] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) K
	clone func(T) T
}

func newMemTable[T any, K comparable](seed []T, idOf func(T) K, clone func(T) T) *memTable[T, K] {
	m := &memTable[T, K]{idOf: idOf, clone: clone}
	m.items = make([]T, 0, len(seed))
	for _, v := range seed {
		m.items = append(m.items, clone(v))
	}
	return m
}

// insert puts v at the head of the list.
func (m *memTable[T, K]) insert(v T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T{m.clone(v)}, m.items...)
	return m.clone(v)
}

func (m *memTable[T, K]) get(id K) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.items {
		if m.idOf(v) == id {
			return m.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// replace swaps the record with v's id for v, keeping its position.
func (m *memTable[T, K]) replace(v T) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.idOf(v)
	for i := range m.items {
		if m.idOf(m.items[i]) == id {
			m.items[i] = m.clone(v)
			return m.clone(v), true
		}
	}
	var zero T
	return zero, false
}

func (m *memTable[T, K]) remove(id K) bool {
	return m.removeWhere(func(v T) bool { return m.idOf(v) == id }) > 0
}

// removeWhere drops every record matching match and returns how many went.
func (m *memTable[T, K]) removeWhere(match func(T) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0:0]
	var n int64
	for _, v := range m.items {
		if match(v) {
			n++
			continue
		}
		kept = append(kept, v)
	}
	m.items = kept
	return n
}

// filter returns clones of every record matching keep, in list order.
// A nil keep returns everything.
func (m *memTable[T, K]) filter(keep func(T) bool) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.items))
	for _, v := range m.items {
		if keep == nil || keep(v) {
			out = append(out, m.clone(v))
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
