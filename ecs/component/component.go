package component

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

// Kind is the untyped view of a ComponentKind, used by multi-kind queries
// and error messages.
type Kind interface {
	ID() ComponentID
	Valid() bool
	Name() string
}

// ComponentKind identifies one component store. Two kinds over the same Go
// type are distinct stores.
type ComponentKind[T any] struct {
	id ComponentID
}

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map // ComponentID -> string
)

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	kindNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the Go type the kind stores, e.g. "component.Mover".
func (k ComponentKind[T]) Name() string {
	if name, ok := kindNames.Load(k.id); ok {
		return name.(string)
	}
	return "<invalid>"
}

// ComponentHandle is what packages export for each component type; call
// Kind() to use it with the ecs helpers.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
