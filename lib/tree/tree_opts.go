package tree

import (
	"reflect"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

type TreeOption[K infra.OrderedKey, V any] func(*binaryTree[K, V])

// WithKeyComparator replaces the natural ascending order of keys.
func WithKeyComparator[K infra.OrderedKey, V any](cmp infra.OrderedKeyComparator[K]) TreeOption[K, V] {
	return func(tree *binaryTree[K, V]) {
		if cmp != nil {
			tree.cmp = cmp
		}
	}
}

func WithTreeDesc[K infra.OrderedKey, V any]() TreeOption[K, V] {
	return WithKeyComparator[K, V](infra.DescOrderedKeyComparator[K]())
}

// WithValueEqual decides whether an insert of an existing key is a
// duplicate entry or only a duplicate key. reflect.DeepEqual by default.
func WithValueEqual[K infra.OrderedKey, V any](equal func(a, b V) bool) TreeOption[K, V] {
	return func(tree *binaryTree[K, V]) {
		if equal != nil {
			tree.valEqual = equal
		}
	}
}

func WithTreeLogger[K infra.OrderedKey, V any](logger xlog.XLogger) TreeOption[K, V] {
	return func(tree *binaryTree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

// WithTreeStats records the tree operations by the global otel meter
// provider, under the meter "xboot/xtree/<name>".
func WithTreeStats[K infra.OrderedKey, V any](name string) TreeOption[K, V] {
	return func(tree *binaryTree[K, V]) {
		tree.stats = newTreeStats(name)
	}
}

func newBinaryTree[K infra.OrderedKey, V any](b balancer[K, V], opts ...TreeOption[K, V]) *binaryTree[K, V] {
	tree := &binaryTree[K, V]{
		cmp: infra.AscOrderedKeyComparator[K](),
		valEqual: func(a, b V) bool {
			return reflect.DeepEqual(a, b)
		},
		balancer: b,
		logger:   xlog.NopXLogger(),
	}
	for _, o := range opts {
		o(tree)
	}
	return tree
}

// NewTree is the entry when the kind comes from configuration,
// see ParseKind.
func NewTree[K infra.OrderedKey, V any](kind Kind, opts ...TreeOption[K, V]) (Tree[K, V], error) {
	switch kind {
	case KindBST:
		return NewBST[K, V](opts...), nil
	case KindAVL:
		return NewAVLTree[K, V](opts...), nil
	case KindRB:
		return NewRBTree[K, V](opts...), nil
	default:
	}
	return nil, infra.WrapErrorStackWithMessage(ErrUnknownKind, "[xtree] new tree of "+kind.String())
}
