package pawcore

import "strings"

// Kind identifies the variant of a stored object.
type Kind int

const (
	KindNone Kind = iota // Zero value - invalid/no object
	KindInt
	KindStr
	KindList
	KindDict
	KindCapsule
	KindRangeIter
	KindSeqIter
	KindBuiltin
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindStr:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindCapsule:
		return "capsule"
	case KindRangeIter:
		return "rangeiter"
	case KindSeqIter:
		return "seqiter"
	case KindBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// KindFromString converts a string to a Kind
func KindFromString(s string) Kind {
	switch strings.ToLower(s) {
	case "int":
		return KindInt
	case "string", "str":
		return KindStr
	case "list":
		return KindList
	case "dict":
		return KindDict
	case "capsule":
		return KindCapsule
	case "rangeiter":
		return KindRangeIter
	case "seqiter":
		return KindSeqIter
	case "builtin":
		return KindBuiltin
	default:
		return KindNone
	}
}

// storedObject is the store's record for one live object.
// RefCount reaching zero destroys the record exactly once.
type storedObject struct {
	value    interface{}
	kind     Kind
	refCount int
	attrs    map[string]int // attribute name -> owned object ID
}

// storedList holds positional items as owned object IDs.
type storedList struct {
	items []int
}

// storedDict maps string keys to owned object IDs.
type storedDict struct {
	entries map[string]int
}

// storedCapsule wraps opaque foreign data behind a tag. The destructor, if
// supplied, runs exactly once when the capsule is destroyed; afterwards the
// payload must never be touched again.
type storedCapsule struct {
	payload    interface{}
	tag        string
	destructor func(interface{})
}

// rangeIterState is the built-in counting iterator. Once done is set the
// iterator is terminal; no advance may resurrect it.
type rangeIterState struct {
	current int64
	stop    int64
	step    int64
	done    bool
}

// seqIterState is an opaque cursor over a stored list. The cursor owns a
// reference to the list for its whole lifetime.
type seqIterState struct {
	listID int
	index  int
	done   bool
}
