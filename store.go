package snooker

import "fmt"

// Store is a stable-ID packed container: values live in a dense slice for
// cheap iteration, an id-to-index table keeps lookups O(1), and removal
// swaps the last element into the vacated slot. A live ID survives any
// number of structural changes; only its (unobservable) slot index moves.
type Store[T any] struct {
	items []T
	ids   []ID
	index map[ID]int
	next  ID
}

func MakeStore[T any]() Store[T] {
	return Store[T]{index: make(map[ID]int)}
}

// Insert adds a value and returns its freshly allocated ID. IDs are never
// reused.
func (s *Store[T]) Insert(item T) ID {
	id := s.next
	s.next++
	s.index[id] = len(s.items)
	s.items = append(s.items, item)
	s.ids = append(s.ids, id)
	return id
}

// Get returns a mutable reference to the value behind id. Unknown ids are a
// programmer error and panic.
func (s *Store[T]) Get(id ID) *T {
	idx, ok := s.index[id]
	if !ok {
		panic(fmt.Sprintf("store does not contain id %d", id))
	}
	return &s.items[idx]
}

// Erase removes id in O(1) by swapping the last element into its slot.
// Unknown ids panic.
func (s *Store[T]) Erase(id ID) {
	idx, ok := s.index[id]
	if !ok {
		panic(fmt.Sprintf("store does not contain id %d", id))
	}
	last := len(s.items) - 1
	if idx != last {
		s.items[idx] = s.items[last]
		moved := s.ids[last]
		s.ids[idx] = moved
		s.index[moved] = idx
	}
	s.items = s.items[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
}

func (s *Store[T]) IsValid(id ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// Each visits every element in packed order. Erasing while iterating is not
// supported, and iteration order is unspecified after any erase.
func (s *Store[T]) Each(fn func(ID, *T)) {
	for i := range s.items {
		fn(s.ids[i], &s.items[i])
	}
}
