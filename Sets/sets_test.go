package Sets

import (
	"math"
	"slices"
	"testing"

	"github.com/emirpasic/gods/utils"
	"github.com/stretchr/testify/require"
)

func TestNatural(t *testing.T) {
	c := Natural[int]()
	require.Negative(t, c(1, 2))
	require.Positive(t, c(2, 1))
	require.Zero(t, c(3, 3))
	require.True(t, c.Less(1, 2))
	require.False(t, c.Less(2, 2))

	f := Natural[float64]()
	require.Zero(t, f(math.NaN(), 1))
}

func TestReverse(t *testing.T) {
	c := Reverse(Natural[string]())
	vs := []string{"b", "c", "a"}
	slices.SortFunc(vs, (func(a, b string) int)(c))
	require.Equal(t, []string{"c", "b", "a"}, vs)
	require.Zero(t, c("x", "x"))
}

func TestFromGods(t *testing.T) {
	c := FromGods[int](utils.IntComparator)
	require.Negative(t, c(-5, 4))
	require.Zero(t, c(4, 4))
	s := FromGods[string](utils.StringComparator)
	require.Positive(t, s("b", "a"))
	require.Panics(t, func() { FromGods[string](utils.IntComparator)("a", "b") })
}
