package tree

import (
	"strconv"
	"strings"

	"github.com/benz9527/xtree/lib/infra"
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "RBColor(" + strconv.FormatInt(int64(c), 10) + ")"
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Direction(" + strconv.FormatInt(int64(d), 10) + ")"
}

var kindNames = [...]string{
	KindBST: "bst",
	KindAVL: "avl",
	KindRB:  "rbtree",
}

func (k Kind) String() string {
	if k >= _kindMax {
		return "Kind(" + strconv.FormatInt(int64(k), 10) + ")"
	}
	return kindNames[k]
}

// ParseKind accepts the Kind names and a few common aliases,
// case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bst", "unbalanced", "binary":
		return KindBST, nil
	case "avl":
		return KindAVL, nil
	case "rb", "rbtree", "red-black", "redblack":
		return KindRB, nil
	default:
	}
	return _kindMax, infra.WrapErrorStackWithMessage(ErrUnknownKind, "[xtree] parse kind "+strconv.Quote(name))
}
