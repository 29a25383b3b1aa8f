package TreeSet

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/g-m-twostay/go-ordset/Sets"
	"github.com/g-m-twostay/go-ordset/Trees"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var rg = *rand.New(rand.NewSource(0))

func forBackends(t *testing.T, f func(t *testing.T, opt Option)) {
	for _, k := range Trees.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			f(t, WithBackend(k))
		})
	}
}

func collect[E any](s *TreeSet[E]) []E {
	var vs []E
	s.Visit(func(v E) {
		vs = append(vs, v)
	})
	return vs
}

func TestTreeSet_New(t *testing.T) {
	require.PanicsWithError(t, (&NilComparatorError{}).Error(), func() {
		New[int](nil, nil)
	})
	s := New(Sets.Natural[int](), nil)
	require.Equal(t, Trees.AVL, s.Kind())
	require.Zero(t, s.Size())
	require.Zero(t, s.Height())
}

func TestTreeSet_Empty(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Natural[int](), nil, opt)
		n, ok := s.First()
		require.False(t, ok)
		require.True(t, n.Nil())
		_, ok = s.Last()
		require.False(t, ok)
		_, ok = s.FindNode(3)
		require.False(t, ok)
		_, ok = s.Find(3)
		require.False(t, ok)
		require.False(t, s.Remove(3))
		require.Empty(t, collect(s))
		require.False(t, s.Corrupt())

		next, ok := s.Next(n)
		require.False(t, ok)
		require.True(t, next.Nil())
		prev, ok := s.Previous(n)
		require.False(t, ok)
		require.True(t, prev.Nil())
		require.PanicsWithValue(t, Trees.InvalidRefError{Kind: s.Kind()}, func() { s.NodeValue(n) })
	})
}

// walking off either end gives the zero Node, which stays at the end.
func TestTreeSet_PastTheEnds(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		for _, checked := range []bool{false, true} {
			opts := []Option{opt}
			if checked {
				opts = append(opts, WithCheckedNodes())
			}
			s := New(Sets.Natural[int](), nil, opts...)
			s.Insert(1)
			s.Insert(2)
			last, _ := s.Last()
			end, ok := s.Next(last)
			require.False(t, ok)
			_, ok = s.Next(end)
			require.False(t, ok)
			_, ok = s.Previous(end)
			require.False(t, ok)
		}
	})
}

func TestTreeSet_Single(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Natural[int](), nil, opt)
		s.Insert(7)
		first, ok := s.First()
		require.True(t, ok)
		last, _ := s.Last()
		require.Equal(t, 7, s.NodeValue(first))
		require.Equal(t, 7, s.NodeValue(last))
		_, ok = s.Next(first)
		require.False(t, ok)
		_, ok = s.Previous(first)
		require.False(t, ok)
	})
}

func TestTreeSet_RoundTrip(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Natural[int](), nil, opt)
		content := make(map[int]struct{})
		for i := 0; i < 5000; i++ {
			v := rg.Intn(2000)
			if rg.Intn(2) == 0 {
				_, in := content[v]
				require.Equal(t, in, s.Remove(v))
				delete(content, v)
				_, ok := s.Find(v)
				require.False(t, ok)
			} else {
				s.Insert(v)
				content[v] = struct{}{}
				got, ok := s.Find(v)
				require.True(t, ok)
				require.Equal(t, v, got)
			}
			require.Equal(t, uint(len(content)), s.Size())
		}
		require.False(t, s.Corrupt())
		t.Logf("height: %d, size: %d.\n", s.Height(), s.Size())

		vs := collect(s)
		require.Len(t, vs, len(content))
		require.IsIncreasing(t, vs)
		var back []int
		for n, ok := s.Last(); ok; n, ok = s.Previous(n) {
			back = append(back, s.NodeValue(n))
		}
		require.IsDecreasing(t, back)
		require.Len(t, back, len(vs))
	})
}

type keyed struct {
	key int
	tag string
}

func byKey(a, b keyed) int {
	return a.key - b.key
}

func TestTreeSet_Replace(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		var destroyed []keyed
		s := New[keyed](byKey, func(v keyed) { destroyed = append(destroyed, v) }, opt)
		s.Insert(keyed{1, "first"})
		n, _ := s.FindNode(keyed{key: 1})
		s.Insert(keyed{1, "second"})
		s.Insert(keyed{1, "third"})
		require.Equal(t, uint(1), s.Size())
		got, _ := s.Find(keyed{key: 1})
		require.Equal(t, "third", got.tag)
		require.Equal(t, []keyed{{1, "first"}, {1, "second"}}, destroyed)
		require.Equal(t, "third", s.NodeValue(n).tag, "replacing must keep the node")
	})
}

func TestTreeSet_Destroy(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		count := make(map[int]int)
		s := New(Sets.Natural[int](), func(v int) { count[v]++ }, opt)
		for i := 0; i < 200; i++ {
			s.Insert(i)
		}
		for i := 0; i < 200; i += 3 {
			require.True(t, s.Remove(i))
		}
		s.Destroy()
		require.Len(t, count, 200)
		for v, c := range count {
			require.Equal(t, 1, c, "value %d", v)
		}
		require.Zero(t, s.Size())
		_, ok := s.First()
		require.False(t, ok)

		s.Insert(1)
		require.Equal(t, uint(1), s.Size())
		require.False(t, s.Corrupt())
	})
}

func TestTreeSet_SetDestroy(t *testing.T) {
	var a, b int
	fa := Sets.DestroyFunc[int](func(int) { a++ })
	s := New(Sets.Natural[int](), fa)
	s.Insert(1)
	s.Insert(2)
	s.Remove(1)
	prev := s.SetDestroy(func(int) { b++ })
	require.NotNil(t, prev)
	prev(0)
	require.Equal(t, 2, a)
	s.Remove(2)
	require.Equal(t, 1, b)
	require.NotNil(t, s.SetDestroy(nil))
	s.Insert(3)
	s.Destroy()
	require.Equal(t, 2, a)
	require.Equal(t, 1, b)
}

func TestTreeSet_Reverse(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Reverse(Sets.Natural[string]()), nil, opt)
		for _, v := range []string{"b", "d", "a", "c", "e"} {
			s.Insert(v)
		}
		require.Equal(t, []string{"e", "d", "c", "b", "a"}, collect(s))
	})
}

func TestTreeSet_CheckedNodes(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Natural[int](), nil, opt, WithCheckedNodes())
		for i := 0; i < 10; i++ {
			s.Insert(i)
		}
		n, _ := s.FindNode(4)
		s.Insert(4)
		require.Equal(t, 4, s.NodeValue(n), "replacing keeps nodes valid")

		s.Insert(100)
		require.Panics(t, func() { s.Next(n) })
		n, _ = s.FindNode(4)
		s.Remove(5)
		require.PanicsWithError(t, (&StaleNodeError{Gen: n.gen, Want: n.gen + 1}).Error(), func() { s.NodeValue(n) })

		other := New(Sets.Natural[int](), nil, opt, WithCheckedNodes())
		other.Insert(4)
		m, _ := other.FindNode(4)
		require.PanicsWithError(t, (&StaleNodeError{Foreign: true}).Error(), func() { s.Previous(m) })
		_, ok := s.Next(Node[int]{})
		require.False(t, ok)
	})
}

func TestTreeSet_RemovedBTreeNode(t *testing.T) {
	s := New(Sets.Natural[int](), nil, WithBackend(Trees.BTree))
	for i := 0; i < 10; i++ {
		s.Insert(i)
	}
	n, _ := s.FindNode(3)
	s.Remove(3)
	require.Panics(t, func() { s.Next(n) })
}

func TestTreeSet_Logging(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := New(Sets.Natural[int](), nil, WithBackend(Trees.BTree), WithLogger(l), WithCheckedNodes())
	s.Insert(1)
	s.Destroy()
	require.Contains(t, buf.String(), `"backend":"btree"`)
	require.Contains(t, buf.String(), `"message":"destroying set"`)

	buf.Reset()
	require.Panics(t, func() { s.NodeValue(Node[int]{}) })
	require.Contains(t, buf.String(), `"level":"error"`)
}

func TestTreeSet_Print(t *testing.T) {
	s := New(Sets.Natural[int](), nil, WithBackend(Trees.BTree))
	for i := 1; i <= 5; i++ {
		s.Insert(i)
	}
	var buf bytes.Buffer
	s.Print(&buf)
	require.Equal(t, "0: [3]\n1: [1 2] [4 5]\n", buf.String())
}
