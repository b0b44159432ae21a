package intset

import (
	"fmt"

	"github.com/rogpeppe/intset/avltree"
)

// Op identifies the operation applied by a bulk call.
type Op int

const (
	// OpAdd inserts the operand's values.
	OpAdd Op = iota
	// OpRemove deletes the operand's values.
	OpRemove
	// OpFind checks that every operand value is present.
	OpFind
	// OpRetain deletes every value not in the operand.
	OpRetain
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpFind:
		return "find"
	case OpRetain:
		return "retain"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// mutates reports whether op can modify the set it is applied to.
func (op Op) mutates() bool {
	return op != OpFind
}

// applyValue applies op for a single value to the bucket t
// and returns the tree's result: whether t was modified, or
// for OpFind whether v is present.
func (op Op) applyValue(t *avltree.Tree, v int) bool {
	switch op {
	case OpAdd:
		return t.Insert(v)
	case OpRemove:
		return t.Delete(v)
	case OpFind:
		return t.Contains(v)
	}
	panic(fmt.Errorf("operation %v does not apply to a single value", op))
}

// step is like applyValue but returns the worker's view of the
// outcome: mutations always succeed once applied, while OpFind
// succeeds only when v is present.
func (op Op) step(t *avltree.Tree, v int) bool {
	found := op.applyValue(t, v)
	return op.mutates() || found
}

// combine applies op between bucket dst of one set and the
// corresponding bucket src of another. As with step, only
// OpFind can report failure for valid buckets.
func (op Op) combine(dst, src *avltree.Tree) bool {
	switch op {
	case OpAdd:
		dst.AddTree(src)
		return true
	case OpRemove:
		return dst.RemoveTree(src)
	case OpFind:
		return dst.ContainsTree(src)
	case OpRetain:
		return dst.RetainTree(src)
	}
	panic(fmt.Errorf("unknown operation %v", op))
}
