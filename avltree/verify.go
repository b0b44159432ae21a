package avltree

import (
	"github.com/gravitational/trace"
)

// Verify checks the structural invariants of the tree: values are
// strictly increasing in order, every cached height is correct,
// every balance factor is within [-1, 1] and the element count
// matches the number of nodes. It returns an error describing the
// first violation found.
func (t *Tree) Verify() error {
	if t == nil {
		return nil
	}
	var (
		count int
		prev  int
	)
	var check func(n *node) (int, error)
	check = func(n *node) (int, error) {
		if n == nil {
			return 0, nil
		}
		lh, err := check(n.left)
		if err != nil {
			return 0, err
		}
		if count > 0 && n.value <= prev {
			return 0, trace.BadParameter("value %d follows %d in order", n.value, prev)
		}
		prev = n.value
		count++
		rh, err := check(n.right)
		if err != nil {
			return 0, err
		}
		if h := max(lh, rh) + 1; n.height != h {
			return 0, trace.BadParameter("node %d has height %d, want %d", n.value, n.height, h)
		}
		if bf := rh - lh; bf < -1 || bf > 1 {
			return 0, trace.BadParameter("node %d has balance factor %d", n.value, bf)
		}
		return n.height, nil
	}
	if _, err := check(t.root); err != nil {
		return trace.Wrap(err)
	}
	if count != t.len {
		return trace.BadParameter("tree holds %d nodes but records length %d", count, t.len)
	}
	return nil
}
