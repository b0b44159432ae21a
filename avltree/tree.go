// Package avltree implements an ordered set of ints held in an AVL tree:
// a binary search tree in which the heights of the two child subtrees of
// every node differ by at most one.
//
// The zero Tree is an empty tree ready to use. A Tree is not safe for
// concurrent use; callers that share one between goroutines must
// serialize access themselves.
package avltree

import (
	"iter"
)

// Tree holds an AVL tree of distinct int values.
type Tree struct {
	root *node
	// len holds the number of values in the tree.
	len int
}

// node is a tree node. Each node exclusively owns its children.
type node struct {
	value       int
	height      int
	left, right *node
}

// Len returns the number of values in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.len
}

// Height returns the height of the tree. An empty tree has
// height 0 and a tree holding a single value has height 1.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return height(t.root)
}

// Insert adds v to the tree. It reports whether the tree was
// modified; inserting a value that is already present is a no-op.
// The complexity is O(log n) where n = t.Len().
func (t *Tree) Insert(v int) bool {
	if t == nil {
		return false
	}
	var modified bool
	t.root = insert(t.root, v, &modified)
	if modified {
		t.len++
	}
	return modified
}

// Delete removes v from the tree. It reports whether the tree
// was modified; deleting an absent value is a no-op.
// The complexity is O(log n) where n = t.Len().
func (t *Tree) Delete(v int) bool {
	if t == nil {
		return false
	}
	var modified bool
	t.root = erase(t.root, v, &modified)
	if modified {
		t.len--
	}
	return modified
}

// Contains reports whether v is in the tree.
func (t *Tree) Contains(v int) bool {
	if t == nil {
		return false
	}
	n := t.root
	for n != nil {
		switch {
		case v < n.value:
			n = n.left
		case v > n.value:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Min returns the smallest value in the tree. The second
// result is false if the tree is empty.
func (t *Tree) Min() (int, bool) {
	if t.Len() == 0 {
		return 0, false
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.value, true
}

// Max returns the largest value in the tree. The second
// result is false if the tree is empty.
func (t *Tree) Max() (int, bool) {
	if t.Len() == 0 {
		return 0, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.value, true
}

// Export copies the values of the tree in ascending order into dst
// and returns the number of values copied. It never writes past
// len(dst): if the tree holds more values than that, only the
// smallest len(dst) values are copied.
func (t *Tree) Export(dst []int) int {
	if t == nil {
		return 0
	}
	return export(t.root, dst, 0)
}

func export(n *node, dst []int, count int) int {
	if n == nil || count >= len(dst) {
		return count
	}
	count = export(n.left, dst, count)
	if count >= len(dst) {
		return count
	}
	dst[count] = n.value
	return export(n.right, dst, count+1)
}

// Values returns all the values in the tree in ascending order.
func (t *Tree) Values() []int {
	vs := make([]int, t.Len())
	t.Export(vs)
	return vs
}

// All returns an iterator over the values in the tree in ascending
// order. The tree must not be modified during iteration.
func (t *Tree) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		if t == nil {
			return
		}
		walk(t.root, yield)
	}
}

func walk(n *node, yield func(int) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.value) && walk(n.right, yield)
}

// Clear removes all values from the tree, releasing the nodes
// children first.
func (t *Tree) Clear() {
	if t == nil {
		return
	}
	release(t.root)
	t.root = nil
	t.len = 0
}

func release(n *node) {
	if n == nil {
		return
	}
	release(n.left)
	release(n.right)
	*n = node{}
}
