package Trees

import "github.com/g-m-twostay/go-ordset/Queues"

// binTree is a binary search tree with no repeated values. When balanced is true it's an
// AVL tree: after every structural change, each node on the path back to the root is
// repaired with rotations so that the heights of its subtrees differ by at most 1, which
// bounds the height D by 1.44*log2(n+2). Otherwise it's a plain BST whose shape depends on
// the insertion order, so D is O(n) in the worst case.
// Heights are cached in both cases.
// Modifications are recursive, every call returns the new root of the subtree it's given.
// There are no parent pointers; Next and Previous search down from the root.
type binTree[E any] struct {
	root *node[E]
	//returns negative number if first < second, 0 if first==second, positive number if first>second.
	cmp      func(E, E) int
	balanced bool
	walkQ    Queues.ArrayQueue[*node[E]]
}

func (u *binTree[E]) Kind() Kind {
	if u.balanced {
		return AVL
	}
	return BST
}

func (u *binTree[E]) repair(n *node[E]) *node[E] {
	if u.balanced {
		return repairBalance(n)
	}
	n.updateHeight()
	return n
}

// ref converts n to a Ref without producing a non-nil interface holding a nil pointer.
func ref[E any](n *node[E]) Ref[E] {
	if n == nil {
		return nil
	}
	return n
}

func (u *binTree[E]) asNode(r Ref[E]) *node[E] {
	if n, ok := r.(*node[E]); ok && n != nil {
		return n
	}
	panic(InvalidRefError{u.Kind(), r})
}

// insert v to the subtree rooting at cur. If an equivalent value is found it's swapped for
// v and returned, and nothing else changes.
func (u *binTree[E]) insert(cur *node[E], v E) (*node[E], E, bool) {
	if cur == nil {
		return &node[E]{v: v, h: 1}, *new(E), true
	}
	var old E
	inserted := false
	if order := u.cmp(v, cur.v); order < 0 {
		cur.l, old, inserted = u.insert(cur.l, v)
	} else if order > 0 {
		cur.r, old, inserted = u.insert(cur.r, v)
	} else {
		old, cur.v = cur.v, v
		return cur, old, false
	}
	if !inserted {
		return cur, old, false
	}
	return u.repair(cur), old, true
}

// Insert [Engine.Insert]. Recursive.
// Time: O(D)
func (u *binTree[E]) Insert(v E) (old E, inserted bool) {
	u.root, old, inserted = u.insert(u.root, v)
	return
}

// removeMin unlinks the smallest node of the subtree rooting at cur, which mustn't be nil.
// Returns the new root of the subtree and the unlinked node.
func (u *binTree[E]) removeMin(cur *node[E]) (*node[E], *node[E]) {
	if cur.l == nil {
		return cur.r, cur
	}
	var m *node[E]
	cur.l, m = u.removeMin(cur.l)
	return u.repair(cur), m
}

// remove the value equivalent to v from the subtree rooting at cur.
// A node with 2 children is replaced by the smallest node of its right subtree, so the
// nodes of the values that stay in the tree are never copied.
func (u *binTree[E]) remove(cur *node[E], v E) (*node[E], E, bool) {
	if cur == nil {
		return nil, *new(E), false
	}
	var old E
	removed := false
	if order := u.cmp(v, cur.v); order < 0 {
		cur.l, old, removed = u.remove(cur.l, v)
	} else if order > 0 {
		cur.r, old, removed = u.remove(cur.r, v)
	} else {
		old = cur.v
		l, r := cur.l, cur.r
		cur.l, cur.r = nil, nil
		if l == nil {
			return r, old, true
		} else if r == nil {
			return l, old, true
		}
		var m *node[E]
		r, m = u.removeMin(r)
		m.l, m.r = l, r
		return u.repair(m), old, true
	}
	if !removed {
		return cur, old, false
	}
	return u.repair(cur), old, true
}

// Remove [Engine.Remove]. Recursive.
// Time: O(D)
func (u *binTree[E]) Remove(v E) (old E, removed bool) {
	u.root, old, removed = u.remove(u.root, v)
	return
}

// Find [Engine.Find]
// Time: O(D); Space: O(1)
func (u *binTree[E]) Find(v E) Ref[E] {
	for cur := u.root; cur != nil; {
		if order := u.cmp(v, cur.v); order < 0 {
			cur = cur.l
		} else if order > 0 {
			cur = cur.r
		} else {
			return cur
		}
	}
	return nil
}

func (u *binTree[E]) First() Ref[E] {
	return ref(minNode(u.root))
}

func (u *binTree[E]) Last() Ref[E] {
	return ref(maxNode(u.root))
}

// Next [Engine.Next]. Searches the node of r from the root, remembering the last node
// where the search went left. Panics with InvalidRefError if r isn't in the tree.
// Time: O(D); Space: O(1)
func (u *binTree[E]) Next(r Ref[E]) Ref[E] {
	target := u.asNode(r)
	var p *node[E]
	for cur := u.root; cur != nil; {
		if cur == target {
			if target.r != nil {
				return minNode(target.r)
			}
			return ref(p)
		}
		if u.cmp(target.v, cur.v) > 0 {
			cur = cur.r
		} else {
			p = cur
			cur = cur.l
		}
	}
	panic(InvalidRefError{u.Kind(), r})
}

// Previous [Engine.Previous]. The mirror of Next.
// Time: O(D); Space: O(1)
func (u *binTree[E]) Previous(r Ref[E]) Ref[E] {
	target := u.asNode(r)
	var p *node[E]
	for cur := u.root; cur != nil; {
		if cur == target {
			if target.l != nil {
				return maxNode(target.l)
			}
			return ref(p)
		}
		if u.cmp(target.v, cur.v) < 0 {
			cur = cur.l
		} else {
			p = cur
			cur = cur.r
		}
	}
	panic(InvalidRefError{u.Kind(), r})
}

func walk[E any](n *node[E], f func(E) bool) bool {
	return n == nil || walk(n.l, f) && f(n.v) && walk(n.r, f)
}

// Walk [Engine.Walk]. Recursive.
func (u *binTree[E]) Walk(f func(E) bool) {
	walk(u.root, f)
}

// clearNodes destroys the children of n before n itself.
func clearNodes[E any](n *node[E], f func(E)) {
	if n == nil {
		return
	}
	clearNodes(n.l, f)
	clearNodes(n.r, f)
	n.l, n.r = nil, nil
	f(n.v)
}

// Clear [Engine.Clear]. O(1) if f==nil.
func (u *binTree[E]) Clear(f func(E)) {
	if f != nil {
		clearNodes(u.root, f)
	}
	u.root = nil
}

func (u *binTree[E]) Height() int {
	return height(u.root)
}
