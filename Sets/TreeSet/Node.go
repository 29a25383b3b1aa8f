package TreeSet

import (
	"fmt"

	"github.com/g-m-twostay/go-ordset/Trees"
)

// Node is a handle to a value in a TreeSet and its position, used to walk the set in order.
// The zero Node doesn't refer to anything; it's what receivers return together with false.
// A Node is valid until the next Insert that adds a value, the next Remove that removes one,
// or Destroy, on the set that returned it, and using it afterward is undefined. Replacing a
// value doesn't invalidate its Node.
// With WithCheckedNodes, using an invalid Node panics with *StaleNodeError instead.
type Node[E any] struct {
	ref Trees.Ref[E]
	gen uint64
	set *TreeSet[E]
}

// Nil reports whether n is the zero Node.
func (n Node[E]) Nil() bool {
	return n.ref == nil
}

// StaleNodeError is the panic value when a checked TreeSet is given a Node it didn't return,
// or one that was invalidated.
type StaleNodeError struct {
	Gen, Want uint64
	Foreign   bool
}

func (e *StaleNodeError) Error() string {
	if e.Foreign {
		return "node doesn't belong to this set"
	}
	return fmt.Sprintf("stale node: generation %d, set is at %d", e.Gen, e.Want)
}

type NilComparatorError struct {
}

func (e *NilComparatorError) Error() string {
	return "TreeSet needs a comparator"
}

func (u *TreeSet[E]) node(r Trees.Ref[E]) (Node[E], bool) {
	if r == nil {
		return Node[E]{}, false
	}
	return Node[E]{r, u.gen, u}, true
}

// valid returns the Ref of n, checking it first if the set is checked.
func (u *TreeSet[E]) valid(n Node[E]) Trees.Ref[E] {
	if u.check {
		var err *StaleNodeError
		if n.set != u || n.ref == nil {
			err = &StaleNodeError{Foreign: true}
		} else if n.gen != u.gen {
			err = &StaleNodeError{Gen: n.gen, Want: u.gen}
		}
		if err != nil {
			u.log.Error().Err(err).Msg("invalid node")
			panic(err)
		}
	}
	return n.ref
}
