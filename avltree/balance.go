package avltree

// height returns the cached height of n; absent nodes have height 0.
func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

// fix recomputes the height of n from its children.
func fix(n *node) {
	n.height = max(height(n.left), height(n.right)) + 1
}

// balanceFactor returns the height of the right subtree of n
// minus the height of its left subtree.
func balanceFactor(n *node) int {
	return height(n.right) - height(n.left)
}

//	  n              r
//	 / \            / \
//	a   r    =>    n   c
//	   / \        / \
//	  b   c      a   b
func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	fix(n)
	fix(r)
	return r
}

//	    n          l
//	   / \        / \
//	  l   c  =>  a   n
//	 / \            / \
//	a   b          b   c
func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	fix(n)
	fix(l)
	return l
}

// balance recomputes the height of n and, if its balance factor
// has reached ±2, rotates it back into balance. It returns the
// new root of the subtree. When the grandchildren on the heavy
// side have equal heights, the single rotation is used.
func balance(n *node) *node {
	fix(n)
	switch bf := balanceFactor(n); {
	case bf > 1:
		if height(n.right.left) > height(n.right.right) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	case bf < -1:
		if height(n.left.right) > height(n.left.left) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	}
	return n
}

func insert(n *node, v int, modified *bool) *node {
	if n == nil {
		*modified = true
		return &node{
			value:  v,
			height: 1,
		}
	}
	switch {
	case v < n.value:
		n.left = insert(n.left, v, modified)
	case v > n.value:
		n.right = insert(n.right, v, modified)
	default:
		return n
	}
	if !*modified {
		return n
	}
	return balance(n)
}

func erase(n *node, v int, modified *bool) *node {
	if n == nil {
		return nil
	}
	switch {
	case v < n.value:
		n.left = erase(n.left, v, modified)
	case v > n.value:
		n.right = erase(n.right, v, modified)
	default:
		*modified = true
		if n = unlink(n); n == nil {
			return nil
		}
	}
	if !*modified {
		return n
	}
	return balance(n)
}

// unlink removes n from its subtree and returns the node that
// takes its place, which may need rebalancing.
func unlink(n *node) *node {
	left, right := n.left, n.right
	*n = node{}
	switch {
	case left == nil:
		return right
	case left.right == nil:
		left.right = right
		return left
	}
	// Detach the in-order predecessor, the rightmost node
	// of the left subtree, and put it in place of n.
	parent := left
	for parent.right.right != nil {
		parent = parent.right
	}
	pred := parent.right
	parent.right = pred.left
	pred.left = balanceSpine(left)
	pred.right = right
	return pred
}

// balanceSpine rebalances n and every node on its right spine,
// bottom up.
func balanceSpine(n *node) *node {
	if n == nil {
		return nil
	}
	n.right = balanceSpine(n.right)
	return balance(n)
}
