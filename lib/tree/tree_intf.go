package tree

import "github.com/benz9527/xtree/lib/infra"

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

// Kind is the balancing strategy of a tree.
type Kind uint8

const (
	KindBST Kind = iota
	KindAVL
	KindRB
	_kindMax
)

type KeyVal[K infra.OrderedKey, V any] struct {
	Key K
	Val V
}

type Node[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Left() Node[K, V]
	Right() Node[K, V]
	Parent() Node[K, V]
}

type AVLNode[K infra.OrderedKey, V any] interface {
	Node[K, V]
	Height() int32
}

type RBNode[K infra.OrderedKey, V any] interface {
	Node[K, V]
	Color() RBColor
}

// Tree is an ordered map. It is not safe for concurrent use.
type Tree[K infra.OrderedKey, V any] interface {
	Kind() Kind
	Len() int64
	Root() Node[K, V]
	Search(key K) (V, bool)
	// Insert fails with ErrDuplicateEntry if the key is present with an
	// equal value, ErrDuplicateKey if it is present with another value.
	// A NaN key fails with ErrUnorderedKey.
	Insert(key K, val V) error
	Remove(key K) error
	// RemoveMin returns a detached copy of the removed pair.
	RemoveMin() (Node[K, V], error)
	Keys() []K
	Values() []V
	// MinKey and MaxKey follow the comparator, with WithTreeDesc
	// MinKey is the greatest key.
	MinKey() (K, bool)
	MaxKey() (K, bool)
	// BulkInsert and BulkRemove are not atomic. They stop at the first
	// failing element and keep what has been applied before it.
	BulkInsert(pairs ...KeyVal[K, V]) error
	BulkRemove(keys ...K) error
	ReplaceValue(key K, val V) error
	Foreach(action func(idx int64, node Node[K, V]) bool)
	Clean()
}
