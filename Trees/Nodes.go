package Trees

// A node in a binary tree. h is the height of the subtree rooting at the node, a leaf has
// height 1. The node itself is the Ref handed out for its value.
type node[E any] struct {
	v    E
	l, r *node[E]
	h    int
}

func (n *node[E]) Value() E {
	return n.v
}

// height of n; 0 for nil.
func height[E any](n *node[E]) int {
	if n == nil {
		return 0
	}
	return n.h
}

func (n *node[E]) updateHeight() {
	n.h = 1 + max(height(n.l), height(n.r))
}

// balance factor of n: left height minus right height.
func (n *node[E]) balance() int {
	return height(n.l) - height(n.r)
}

// rotateLeft performs a left rotation on n and returns the new root of the subtree.
// Time: O(1); Space: O(1)
func rotateLeft[E any](n *node[E]) *node[E] {
	rc := n.r
	n.r = rc.l
	rc.l = n
	n.updateHeight()
	rc.updateHeight()
	return rc
}

// rotateRight performs a right rotation on n and returns the new root of the subtree.
// Time: O(1); Space: O(1)
func rotateRight[E any](n *node[E]) *node[E] {
	lc := n.l
	n.l = lc.r
	lc.r = n
	n.updateHeight()
	lc.updateHeight()
	return lc
}

func rotateLeftRight[E any](n *node[E]) *node[E] {
	n.l = rotateLeft(n.l)
	return rotateRight(n)
}

func rotateRightLeft[E any](n *node[E]) *node[E] {
	n.r = rotateRight(n.r)
	return rotateLeft(n)
}

// repairBalance restores the AVL property at n, assuming both subtrees are AVL trees whose
// heights differ by at most 2. Returns the new root of the subtree.
// A child with balance 0 is handled by a single rotation.
func repairBalance[E any](n *node[E]) *node[E] {
	n.updateHeight()
	if b := n.balance(); b > 1 {
		if n.l.balance() >= 0 {
			return rotateRight(n)
		}
		return rotateLeftRight(n)
	} else if b < -1 {
		if n.r.balance() <= 0 {
			return rotateLeft(n)
		}
		return rotateRightLeft(n)
	}
	return n
}

func minNode[E any](n *node[E]) *node[E] {
	if n != nil {
		for n.l != nil {
			n = n.l
		}
	}
	return n
}

func maxNode[E any](n *node[E]) *node[E] {
	if n != nil {
		for n.r != nil {
			n = n.r
		}
	}
	return n
}
