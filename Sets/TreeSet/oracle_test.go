package TreeSet

import (
	"testing"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/avltree"
	"github.com/emirpasic/gods/utils"
	"github.com/g-m-twostay/go-ordset/Sets"
	"github.com/google/btree"
	"github.com/stretchr/testify/require"
)

const (
	tOracleN     = 20000
	tOracleRange = 4000
)

// the same random workload is run against every backend and the reference implementations,
// comparing results step by step.
func TestTreeSet_Oracles(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.FromGods[int](utils.IntComparator), nil, opt)
		gs := treeset.NewWith(utils.IntComparator)
		ga := avltree.NewWithIntComparator()
		gb := btree.NewG[int](3, Sets.Natural[int]().Less)
		for i := 0; i < tOracleN; i++ {
			v := rg.Intn(tOracleRange)
			switch rg.Intn(4) {
			case 0:
				_, had := gb.Delete(v)
				require.Equal(t, had, s.Remove(v))
				gs.Remove(v)
				ga.Remove(v)
			case 1:
				_, ok := s.Find(v)
				require.Equal(t, gs.Contains(v), ok)
			default:
				s.Insert(v)
				gs.Add(v)
				ga.Put(v, struct{}{})
				gb.ReplaceOrInsert(v)
			}
			require.Equal(t, gb.Len(), int(s.Size()))
		}
		require.Equal(t, gs.Size(), int(s.Size()))
		require.Equal(t, ga.Size(), int(s.Size()))

		want := make([]int, 0, gb.Len())
		gb.Ascend(func(v int) bool {
			want = append(want, v)
			return true
		})
		require.Equal(t, want, collect(s))
		for i, v := range gs.Values() {
			require.Equal(t, want[i], v.(int))
		}
		for i, v := range ga.Keys() {
			require.Equal(t, want[i], v.(int))
		}

		if len(want) > 0 {
			first, _ := s.First()
			last, _ := s.Last()
			lo, _ := gb.Min()
			hi, _ := gb.Max()
			require.Equal(t, lo, s.NodeValue(first))
			require.Equal(t, hi, s.NodeValue(last))
			require.Equal(t, ga.Left().Key, s.NodeValue(first))
			require.Equal(t, ga.Right().Key, s.NodeValue(last))
		}
	})
}

// Next and Previous from the node of every value agree with the key order of avltree.
func TestTreeSet_NeighboursMatchAVLTree(t *testing.T) {
	forBackends(t, func(t *testing.T, opt Option) {
		s := New(Sets.Natural[int](), nil, opt)
		ga := avltree.NewWithIntComparator()
		for i := 0; i < 3000; i++ {
			v := rg.Intn(10000)
			s.Insert(v)
			ga.Put(v, nil)
		}
		keys := ga.Keys()
		for i, k := range keys {
			n, ok := s.FindNode(k.(int))
			require.True(t, ok)
			next, hasNext := s.Next(n)
			require.Equal(t, i+1 < len(keys), hasNext)
			if hasNext {
				require.Equal(t, keys[i+1], s.NodeValue(next))
			}
			prev, hasPrev := s.Previous(n)
			require.Equal(t, i > 0, hasPrev)
			if hasPrev {
				require.Equal(t, keys[i-1], s.NodeValue(prev))
			}
		}
	})
}
