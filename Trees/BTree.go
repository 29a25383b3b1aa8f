package Trees

import "github.com/g-m-twostay/go-ordset/Queues"

// bTree is a (3,5) B-tree: every node other than the root holds 2 to 4 values, so an
// internal node has 3 to 5 children, and all the leaves are at the same depth. The height
// D is O(log n): at least 3 children per internal node below the root gives D <= log3(n)+1.
// Values are kept in entries that point back to their owning node, so Next and Previous
// start from the entry itself instead of searching from the root, and walk up through
// parent links when they reach the edge of a leaf.
// Unlike binTree, a Ref that was removed is detected: its owner is cleared, and using it
// panics with InvalidRefError. Refs of values that are still in the tree stay valid across
// modifications.
type bTree[E any] struct {
	root *bNode[E]
	//returns negative number if first < second, 0 if first==second, positive number if first>second.
	cmp   func(E, E) int
	walkQ Queues.ArrayQueue[*bNode[E]]
}

func (u *bTree[E]) Kind() Kind {
	return BTree
}

func (u *bTree[E]) asEntry(r Ref[E]) (*entry[E], int) {
	if e, ok := r.(*entry[E]); ok && e != nil && e.owner != nil {
		if i := e.owner.entryIndex(e); i >= 0 {
			return e, i
		}
	}
	panic(InvalidRefError{BTree, r})
}

// locate the node where v is or would be inserted, which is a leaf when v isn't
// found. i is the index of v in the node, or the index where v should be inserted.
// The tree mustn't be empty.
func (u *bTree[E]) locate(v E) (n *bNode[E], i int, found bool) {
	for n = u.root; ; n = n.children[i] {
		for i = 0; i < n.count; i++ {
			if order := u.cmp(v, n.entries[i].v); order == 0 {
				return n, i, true
			} else if order < 0 {
				break
			}
		}
		if n.leaf() {
			return n, i, false
		}
	}
}

// Insert [Engine.Insert]. A value is always added to a leaf; overflowing nodes are split
// bottom up.
// Time: O(D)
func (u *bTree[E]) Insert(v E) (old E, inserted bool) {
	if u.root == nil {
		u.root = new(bNode[E])
		u.root.insertEntry(&entry[E]{v: v}, 0)
		return old, true
	}
	n, i, found := u.locate(v)
	if found {
		e := n.entries[i]
		old, e.v = e.v, v
		return old, false
	}
	n.insertEntry(&entry[E]{v: v}, i)
	if n.count > maxValues {
		u.split(n)
	}
	return old, true
}

// split the overflowing node n into itself and a new right sibling. With half=count/2,
// the values after index half and their children move to the sibling, and the value at
// half moves up to the parent, which may overflow in turn. Splitting the root creates a
// new root.
func (u *bTree[E]) split(n *bNode[E]) {
	half := n.count / 2
	right := new(bNode[E])
	for i := half + 1; i < n.count; i++ {
		right.insertEntry(n.entries[i], right.count)
		n.entries[i] = nil
	}
	if !n.leaf() {
		for i := half + 1; i <= n.count; i++ {
			right.children[i-half-1] = n.children[i]
			n.children[i].parent = right
			n.children[i] = nil
		}
	}
	median := n.entries[half]
	n.entries[half] = nil
	n.count = half

	if p := n.parent; p == nil {
		root := new(bNode[E])
		root.insertEntry(median, 0)
		root.children[0], root.children[1] = n, right
		n.parent, right.parent = root, root
		u.root = root
	} else {
		i := n.childIndex()
		p.insertEntry(median, i)
		p.insertChild(right, i+1, p.count)
		if p.count > maxValues {
			u.split(p)
		}
	}
}

// Remove [Engine.Remove]. A separator in an internal node is replaced by the largest value
// of its left subtree, so a value is always taken from a leaf. Underflowing nodes are
// repaired bottom up, and an empty root is replaced by its only child.
// Time: O(D)
func (u *bTree[E]) Remove(v E) (old E, removed bool) {
	if u.root == nil {
		return
	}
	n, i, found := u.locate(v)
	if !found {
		return
	}
	e := n.entries[i]
	old = e.v
	if n.leaf() {
		n.removeEntry(i)
		u.repairUnderflow(n)
	} else {
		m := maxEntry(n.children[i])
		l := m.owner
		l.removeEntry(l.count - 1)
		n.entries[i], m.owner = m, n
		u.repairUnderflow(l)
	}
	e.owner = nil
	if u.root.count == 0 {
		if c := u.root.children[0]; c != nil {
			c.parent = nil
			u.root = c
		} else {
			u.root = nil
		}
	}
	return old, true
}

// repairUnderflow of n. Borrows a value through the parent from a sibling that has one to
// spare, preferring the right sibling, or else merges with a sibling, preferring the left
// one. A merge takes a value from the parent, so it's repaired next.
func (u *bTree[E]) repairUnderflow(n *bNode[E]) {
	if n.count >= minValues || n.parent == nil {
		return
	}
	p := n.parent
	i := n.childIndex()
	var left, right *bNode[E]
	if i > 0 {
		left = p.children[i-1]
	}
	if i < p.count {
		right = p.children[i+1]
	}
	if right != nil && right.count > minValues {
		transferLeft(n, right, i)
	} else if left != nil && left.count > minValues {
		transferRight(n, left, i-1)
	} else if left != nil {
		u.merge(left, n, i-1)
	} else {
		u.merge(n, right, i)
	}
}

// transferLeft moves the separator at index sep of the parent to the end of n, and the first
// value of n's right sibling up in its place. The sibling's first child follows.
func transferLeft[E any](n, right *bNode[E], sep int) {
	p := n.parent
	n.insertEntry(p.entries[sep], n.count)
	if !n.leaf() {
		c := right.removeChild(0, right.count+1)
		n.insertChild(c, n.count, n.count)
	}
	e := right.removeEntry(0)
	p.entries[sep], e.owner = e, p
}

// transferRight moves the separator at index sep of the parent to the front of n, and the
// last value of n's left sibling up in its place. The sibling's last child follows.
func transferRight[E any](n, left *bNode[E], sep int) {
	p := n.parent
	n.insertEntry(p.entries[sep], 0)
	if !n.leaf() {
		c := left.removeChild(left.count, left.count+1)
		n.insertChild(c, 0, n.count)
	}
	e := left.removeEntry(left.count - 1)
	p.entries[sep], e.owner = e, p
}

// merge right into left, with the separator at index sep of their parent between them.
// right is dropped, and the parent loses a value and a child.
func (u *bTree[E]) merge(left, right *bNode[E], sep int) {
	p := left.parent
	left.insertEntry(p.entries[sep], left.count)
	if !right.leaf() {
		for k := 0; k <= right.count; k++ {
			left.children[left.count+k] = right.children[k]
			right.children[k].parent = left
		}
	}
	for k := 0; k < right.count; k++ {
		left.insertEntry(right.entries[k], left.count)
	}
	p.removeEntry(sep)
	p.removeChild(sep+1, p.count+2)
	u.repairUnderflow(p)
}

// Find [Engine.Find]
// Time: O(D); Space: O(1)
func (u *bTree[E]) Find(v E) Ref[E] {
	if u.root == nil {
		return nil
	}
	if n, i, found := u.locate(v); found {
		return n.entries[i]
	}
	return nil
}

func (u *bTree[E]) First() Ref[E] {
	if u.root == nil {
		return nil
	}
	return minEntry(u.root)
}

func (u *bTree[E]) Last() Ref[E] {
	if u.root == nil {
		return nil
	}
	return maxEntry(u.root)
}

// Next [Engine.Next]. In an internal node the next value is the smallest of the child to the
// right of r. In a leaf it's the value after r, or when r is the last value, the separator
// right of the first ancestor entered from a child other than its last one.
// Time: O(D); Space: O(1)
func (u *bTree[E]) Next(r Ref[E]) Ref[E] {
	e, i := u.asEntry(r)
	n := e.owner
	if !n.leaf() {
		return minEntry(n.children[i+1])
	}
	if i+1 < n.count {
		return n.entries[i+1]
	}
	for ; n.parent != nil; n = n.parent {
		if c := n.childIndex(); c < n.parent.count {
			return n.parent.entries[c]
		}
	}
	return nil
}

// Previous [Engine.Previous]. The mirror of Next.
// Time: O(D); Space: O(1)
func (u *bTree[E]) Previous(r Ref[E]) Ref[E] {
	e, i := u.asEntry(r)
	n := e.owner
	if !n.leaf() {
		return maxEntry(n.children[i])
	}
	if i > 0 {
		return n.entries[i-1]
	}
	for ; n.parent != nil; n = n.parent {
		if c := n.childIndex(); c > 0 {
			return n.parent.entries[c-1]
		}
	}
	return nil
}

func bWalk[E any](n *bNode[E], f func(E) bool) bool {
	if n == nil {
		return true
	}
	for i := 0; i < n.count; i++ {
		if !bWalk(n.children[i], f) || !f(n.entries[i].v) {
			return false
		}
	}
	return bWalk(n.children[n.count], f)
}

// Walk [Engine.Walk]. Recursive.
func (u *bTree[E]) Walk(f func(E) bool) {
	bWalk(u.root, f)
}

// bClear destroys the children of n before its own values, and detaches every entry.
func bClear[E any](n *bNode[E], f func(E)) {
	if n == nil {
		return
	}
	for i := 0; i <= n.count; i++ {
		bClear(n.children[i], f)
		n.children[i] = nil
	}
	for i := 0; i < n.count; i++ {
		e := n.entries[i]
		e.owner, n.entries[i] = nil, nil
		if f != nil {
			f(e.v)
		}
	}
	n.parent = nil
}

// Clear [Engine.Clear]. Always O(n), since every entry is detached.
func (u *bTree[E]) Clear(f func(E)) {
	bClear(u.root, f)
	u.root = nil
}

// Height is the number of levels.
func (u *bTree[E]) Height() int {
	h := 0
	for n := u.root; n != nil; n = n.children[0] {
		h++
	}
	return h
}
