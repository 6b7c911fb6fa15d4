package bevi

import (
	"fmt"
	"reflect"
)

// resourceStore holds singleton values keyed by type identity. There
// is at most one live instance per type; inserting again replaces the
// previous value.
type resourceStore struct {
	values map[reflect.Type]any
}

func newResourceStore() *resourceStore {
	return &resourceStore{values: make(map[reflect.Type]any)}
}

// insert stores the resource, replacing any previous value of the same
// type. Resources must be pointers so systems can mutate them in place.
func (s *resourceStore) insert(v any) {
	s.values[resourceKey(v)] = v
}

func (s *resourceStore) contains(t reflect.Type) bool {
	_, ok := s.values[t]
	return ok
}

// get returns the resource of type t. Looking up a type that was never
// inserted is a configuration bug and aborts immediately.
func (s *resourceStore) get(t reflect.Type) any {
	v, ok := s.values[t]
	if !ok {
		panic(fmt.Sprintf("bevi: resource %v was never inserted", t))
	}
	return v
}

// resourceKey derives the type identity a pointer resource is stored
// under. Non-pointer values are a registration mistake.
func resourceKey(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("bevi: resources must be pointers, got %T", v))
	}
	return t.Elem()
}

// Resource returns the resource of type T. It panics if no value of
// type T was ever inserted: a missing resource is treated as a
// misconfiguration, not a runtime condition.
func Resource[T any](c *Context) *T {
	return c.app.resource(reflect.TypeOf((*T)(nil)).Elem()).(*T)
}

// HasResource reports whether a resource of type T has been inserted.
func HasResource[T any](c *Context) bool {
	return c.app.resources.contains(reflect.TypeOf((*T)(nil)).Elem())
}
