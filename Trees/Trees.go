package Trees

import (
	"fmt"
	"io"
	"strings"
)

// Kind of structure backing an Engine.
type Kind byte

const (
	// BST is a plain binary search tree without any balancing.
	BST Kind = iota
	// AVL is a height balanced binary search tree.
	AVL
	// BTree is a (3,5) B-tree.
	BTree
)

var kindNames = [...]string{BST: "bst", AVL: "avl", BTree: "btree"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// ParseKind is the inverse of Kind.String, case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, &UnknownKindError{s}
}

// Kinds lists all the supported structures.
func Kinds() []Kind {
	return []Kind{BST, AVL, BTree}
}

type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown tree kind %q, want one of %s", e.Name, strings.Join(kindNames[:], ", "))
}

// InvalidRefError is the panic value when an Engine is given a Ref it didn't produce, or a
// Ref whose value was already removed.
type InvalidRefError struct {
	Kind Kind
	Ref  any
}

func (e InvalidRefError) Error() string {
	return fmt.Sprintf("invalid %v reference %T", e.Kind, e.Ref)
}

// Ref refers to a value stored in an Engine and to its position in the structure.
type Ref[E any] interface {
	Value() E
}

// Engine is an ordered structure holding unique values according to a comparison
// function. An Engine doesn't count its values, doesn't destroy them, and is not safe
// for concurrent use.
// Receivers returning a Ref return nil when there's no such value. A Ref is valid until
// the next call to Insert that adds a value, or to Remove that removes one; using it after
// that is undefined unless noted otherwise by the implementation.
type Engine[E any] interface {
	//Insert v. If an equivalent value exists it is replaced by v and returned with
	//inserted==false, and the structure is not modified.
	Insert(v E) (old E, inserted bool)
	//Remove the value equivalent to v, returning it.
	Remove(v E) (old E, removed bool)
	Find(v E) Ref[E]
	First() Ref[E]
	Last() Ref[E]
	Next(r Ref[E]) Ref[E]
	Previous(r Ref[E]) Ref[E]
	//Walk the values in ascending order until f returns false.
	Walk(f func(E) bool)
	//Clear the structure, calling f on every value if f!=nil.
	Clear(f func(E))
	//Height of the structure. 0 when empty.
	Height() int
	//Corrupt reports whether the structure violates its ordering, shape or
	//balance properties.
	Corrupt() bool
	//Print the structure level by level.
	Print(w io.Writer)
	Kind() Kind
}

// New empty Engine of kind k ordered by cmp.
func New[E any](k Kind, cmp func(E, E) int) Engine[E] {
	switch k {
	case BST:
		return &binTree[E]{cmp: cmp}
	case AVL:
		return &binTree[E]{cmp: cmp, balanced: true}
	case BTree:
		return &bTree[E]{cmp: cmp}
	}
	panic(&UnknownKindError{k.String()})
}
