package Trees

const (
	minChildren = 3 // a (3,5) B-tree
	maxChildren = 5

	minValues = minChildren - 1
	maxValues = maxChildren - 1
)

// entry holds a single value of a B-tree and is the Ref handed out for it. owner is the
// node currently holding the entry; entries move between nodes during splits, transfers
// and merges, and owner follows them. A removed entry has a nil owner.
type entry[E any] struct {
	v     E
	owner *bNode[E]
}

func (e *entry[E]) Value() E {
	return e.v
}

// A node of a B-tree. The arrays have one more slot than the bounds allow because a node
// holds maxValues+1 values for a moment before it's split.
// A node is a leaf iff children[0]==nil. parent is nil for the root.
type bNode[E any] struct {
	count    int
	parent   *bNode[E]
	children [maxChildren + 1]*bNode[E]
	entries  [maxValues + 1]*entry[E]
}

func (n *bNode[E]) leaf() bool {
	return n.children[0] == nil
}

// insertEntry e at index i, shifting the entries after it. The children aren't touched.
func (n *bNode[E]) insertEntry(e *entry[E], i int) {
	copy(n.entries[i+1:n.count+1], n.entries[i:n.count])
	n.entries[i] = e
	e.owner = n
	n.count++
}

// removeEntry at index i, shifting the entries after it. The children aren't touched.
func (n *bNode[E]) removeEntry(i int) *entry[E] {
	e := n.entries[i]
	copy(n.entries[i:n.count-1], n.entries[i+1:n.count])
	n.count--
	n.entries[n.count] = nil
	return e
}

// insertChild c at index i, shifting the children after it. have is the number of
// children n had before the call.
func (n *bNode[E]) insertChild(c *bNode[E], i, have int) {
	copy(n.children[i+1:have+1], n.children[i:have])
	n.children[i] = c
	c.parent = n
}

// removeChild at index i, shifting the children after it. have is the number of
// children n had before the call.
func (n *bNode[E]) removeChild(i, have int) *bNode[E] {
	c := n.children[i]
	copy(n.children[i:have-1], n.children[i+1:have])
	n.children[have-1] = nil
	return c
}

// childIndex of n in its parent.
func (n *bNode[E]) childIndex() int {
	p := n.parent
	for i := 0; i <= p.count; i++ {
		if p.children[i] == n {
			return i
		}
	}
	panic("B-tree node is not a child of its parent")
}

// entryIndex of e in its owner, or -1.
func (n *bNode[E]) entryIndex(e *entry[E]) int {
	for i := 0; i < n.count; i++ {
		if n.entries[i] == e {
			return i
		}
	}
	return -1
}

func minEntry[E any](n *bNode[E]) *entry[E] {
	for !n.leaf() {
		n = n.children[0]
	}
	return n.entries[0]
}

func maxEntry[E any](n *bNode[E]) *entry[E] {
	for !n.leaf() {
		n = n.children[n.count]
	}
	return n.entries[n.count-1]
}
