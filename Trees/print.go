package Trees

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/go-ordset/Queues"
)

// levelOrder calls f on every node reachable from root, breadth first, until f returns
// false. children calls its second argument on each child of a node, from left to right.
// q must be empty, and it's empty again when levelOrder returns.
func levelOrder[N any](q Queues.ArrayQueue[N], root N, children func(N, func(N)), f func(n N, depth int) bool) {
	q.Push(root)
	for depth := 0; !q.Empty(); depth++ {
		for range q.Size() {
			n, _ := q.Pop()
			if !f(n, depth) {
				q.Clear()
				return
			}
			children(n, q.Push)
		}
	}
}

// walkQueue is the queue reused by the level order walks of u.
func (u *binTree[E]) walkQueue() Queues.ArrayQueue[*node[E]] {
	if u.walkQ == nil {
		u.walkQ = Queues.MakeArrayQueue[*node[E]](16)
	}
	return u.walkQ
}

func (u *bTree[E]) walkQueue() Queues.ArrayQueue[*bNode[E]] {
	if u.walkQ == nil {
		u.walkQ = Queues.MakeArrayQueue[*bNode[E]](16)
	}
	return u.walkQ
}

func binChildren[E any](n *node[E], f func(*node[E])) {
	if n.l != nil {
		f(n.l)
	}
	if n.r != nil {
		f(n.r)
	}
}

func bChildren[E any](n *bNode[E], f func(*bNode[E])) {
	if !n.leaf() {
		for i := 0; i <= n.count; i++ {
			f(n.children[i])
		}
	}
}

// printLevels writes one line per level, each line starting with the depth.
func printLevels[N any](w io.Writer, q Queues.ArrayQueue[N], root N, children func(N, func(N)), format func(N) string) {
	last := -1
	levelOrder(q, root, children, func(n N, depth int) bool {
		if depth != last {
			if last != -1 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%d:", depth)
			last = depth
		}
		fmt.Fprint(w, " ", format(n))
		return true
	})
	fmt.Fprintln(w)
}

// Print [Engine.Print]. A node is written as its value.
func (u *binTree[E]) Print(w io.Writer) {
	if u.root == nil {
		return
	}
	printLevels(w, u.walkQueue(), u.root, binChildren[E], func(n *node[E]) string {
		return fmt.Sprint(n.v)
	})
}

// Print [Engine.Print]. A node is written as its values in brackets.
func (u *bTree[E]) Print(w io.Writer) {
	if u.root == nil {
		return
	}
	printLevels(w, u.walkQueue(), u.root, bChildren[E], func(n *bNode[E]) string {
		s := "["
		for i := 0; i < n.count; i++ {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprint(n.entries[i].v)
		}
		return s + "]"
	})
}
