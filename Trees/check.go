package Trees

// Corrupt [Engine.Corrupt]. Checks the ordering and the cached heights, and the balance
// factors when it's an AVL tree.
// Time: O(n)
func (u *binTree[E]) Corrupt() bool {
	return !u.proper(u.root, nil, nil)
}

// proper reports whether every value of the subtree rooting at n is strictly between the
// values of lo and hi (nil means unbounded).
func (u *binTree[E]) proper(n, lo, hi *node[E]) bool {
	if n == nil {
		return true
	}
	if lo != nil && u.cmp(lo.v, n.v) >= 0 || hi != nil && u.cmp(n.v, hi.v) >= 0 {
		return false
	}
	if !u.proper(n.l, lo, n) || !u.proper(n.r, n, hi) {
		return false
	}
	if n.h != 1+max(height(n.l), height(n.r)) {
		return false
	}
	if b := n.balance(); u.balanced && (b < -1 || b > 1) {
		return false
	}
	return true
}

// Corrupt [Engine.Corrupt]. Checks the fill of every node, the ordering of values and
// separators, the parent and owner links, and that all leaves are at the same depth.
// Time: O(n)
func (u *bTree[E]) Corrupt() bool {
	if u.root == nil {
		return false
	}
	if u.root.parent != nil || u.root.count == 0 {
		return true
	}
	if !u.proper(u.root, nil, nil) {
		return true
	}
	leafDepth := -1
	corrupt := false
	levelOrder(u.walkQueue(), u.root, bChildren[E], func(n *bNode[E], depth int) bool {
		if n.leaf() {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				corrupt = true
			}
		}
		return !corrupt
	})
	return corrupt
}

func (u *bTree[E]) proper(n *bNode[E], lo, hi *entry[E]) bool {
	if n.count > maxValues || n.parent != nil && n.count < minValues {
		return false
	}
	for i := 0; i < n.count; i++ {
		e := n.entries[i]
		if e == nil || e.owner != n {
			return false
		}
		if i > 0 && u.cmp(n.entries[i-1].v, e.v) >= 0 {
			return false
		}
	}
	if lo != nil && u.cmp(lo.v, n.entries[0].v) >= 0 || hi != nil && u.cmp(n.entries[n.count-1].v, hi.v) >= 0 {
		return false
	}
	if n.leaf() {
		for _, c := range n.children {
			if c != nil {
				return false
			}
		}
		return true
	}
	for i := 0; i <= n.count; i++ {
		c := n.children[i]
		if c == nil || c.parent != n {
			return false
		}
		l, h := lo, hi
		if i > 0 {
			l = n.entries[i-1]
		}
		if i < n.count {
			h = n.entries[i]
		}
		if !u.proper(c, l, h) {
			return false
		}
	}
	return true
}
