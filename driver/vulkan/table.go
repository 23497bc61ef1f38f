// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import "fmt"

// table maps native Vulkan handles to the opaque ids handed out through
// the driver package. Ids start at 1 so the zero id stays null.
type table[T comparable] struct {
	kind  string
	next  uint64
	items map[uint64]T
	ids   map[T]uint64
}

func newTable[T comparable](kind string) *table[T] {
	return &table[T]{
		kind:  kind,
		items: make(map[uint64]T),
		ids:   make(map[T]uint64),
	}
}

// put registers v, returning the id v already had if it was registered.
func (t *table[T]) put(v T) uint64 {
	if id, ok := t.ids[v]; ok {
		return id
	}
	t.next++
	t.items[t.next] = v
	t.ids[v] = t.next
	return t.next
}

func (t *table[T]) get(id uint64) T {
	v, ok := t.items[id]
	if !ok {
		panic(fmt.Sprintf("vulkan: unknown %s handle %d", t.kind, id))
	}
	return v
}

func (t *table[T]) drop(id uint64) T {
	v := t.get(id)
	delete(t.items, id)
	delete(t.ids, v)
	return v
}

func (t *table[T]) len() int {
	return len(t.items)
}
