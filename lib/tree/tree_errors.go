package tree

type TreeErr string

const (
	ErrDuplicateKey       TreeErr = "duplicate key"
	ErrDuplicateEntry     TreeErr = "duplicate key and value"
	ErrKeyNotFound        TreeErr = "key not found"
	ErrInvariantViolation TreeErr = "tree invariant violation"
	ErrUnknownKind        TreeErr = "unknown tree kind"
	ErrUnorderedKey       TreeErr = "unordered key"
)

func (err TreeErr) Error() string {
	return string(err)
}
