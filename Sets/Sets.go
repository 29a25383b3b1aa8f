package Sets

import (
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/constraints"
)

// Comparator defines both the order and the equivalence of a set. It returns a negative
// number if a<b, 0 if a and b are equivalent, a positive number if a>b.
type Comparator[E any] func(a, b E) int

// Less reports whether a orders strictly before b. The method value can be handed to
// libraries that take a less function instead of a three-way comparison.
func (c Comparator[E]) Less(a, b E) bool {
	return c(a, b) < 0
}

// DestroyFunc is called on a value when it leaves a set for good.
type DestroyFunc[E any] func(E)

// Natural order of E. Unordered floats (NaN) compare equal to everything.
func Natural[E constraints.Ordered]() Comparator[E] {
	return func(a, b E) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
}

// Reverse c.
func Reverse[E any](c Comparator[E]) Comparator[E] {
	return func(a, b E) int {
		return c(b, a)
	}
}

// FromGods adapts an interface{} based comparator from gods, e.g. utils.IntComparator.
// The comparator panics if it's given values of a type it doesn't handle.
func FromGods[E any](c utils.Comparator) Comparator[E] {
	return func(a, b E) int {
		return c(a, b)
	}
}

// Set of unique values. The exact meaning of "unique" is decided by the implementation,
// usually through a Comparator.
type Set[E any] interface {
	//Insert v, replacing an equivalent value if there's one.
	Insert(v E)
	//Remove the value equivalent to v. Returns true if there was one.
	Remove(v E) bool
	//Find the value equivalent to v.
	Find(v E) (E, bool)
	//Size of the set.
	Size() uint
	//Visit every value in ascending order.
	Visit(f func(E))
}

// Navigable is a Set whose values can be walked in order through handles of type N.
// Receivers returning (N, false) mean that there's no such node, either because the set is
// empty or because the walk went past either end.
// A handle is valid until the next structural modification of the set that produced it.
type Navigable[E, N any] interface {
	Set[E]
	FindNode(v E) (N, bool)
	First() (N, bool)
	Last() (N, bool)
	Next(n N) (N, bool)
	Previous(n N) (N, bool)
	NodeValue(n N) E
	//SetDestroy replaces the function called on removed values and returns the previous one.
	SetDestroy(f DestroyFunc[E]) DestroyFunc[E]
	//Destroy all values in the set, leaving it empty.
	Destroy()
}
