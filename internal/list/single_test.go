package list_test

import (
	"slices"
	"testing"

	"deedles.dev/squeue/internal/list"
	"github.com/stretchr/testify/require"
)

func checkLinks[T any](t *testing.T, ls *list.Single[T]) {
	t.Helper()

	if ls.Len() == 0 {
		require.Nil(t, ls.Head())
		require.Nil(t, ls.Tail())
		return
	}

	var last *list.SingleNode[T]
	var count int
	for n := range ls.Nodes() {
		last = n
		count++
	}
	require.Equal(t, ls.Len(), count)
	require.Same(t, ls.Tail(), last)
	require.Nil(t, last.Next())
}

func push[T any](ls *list.Single[T], head bool, vals ...T) {
	for _, v := range vals {
		n := &list.SingleNode[T]{Val: v}
		if head {
			ls.PushHead(n)
			continue
		}
		ls.PushTail(n)
	}
}

func TestSinglePush(t *testing.T) {
	var ls list.Single[int]
	checkLinks(t, &ls)

	push(&ls, false, 1)
	require.Same(t, ls.Head(), ls.Tail())
	checkLinks(t, &ls)

	push(&ls, false, 2, 3)
	push(&ls, true, 0, -1)
	checkLinks(t, &ls)
	require.Equal(t, []int{-1, 0, 1, 2, 3}, slices.Collect(ls.All()))
}

func TestSinglePushHeadEmpty(t *testing.T) {
	var ls list.Single[int]
	push(&ls, true, 1)
	require.Same(t, ls.Head(), ls.Tail())
	checkLinks(t, &ls)
}

func TestSinglePopHead(t *testing.T) {
	var ls list.Single[string]
	require.Nil(t, ls.PopHead())

	push(&ls, false, "a", "b")
	n := ls.PopHead()
	require.Equal(t, "a", n.Val)
	require.Nil(t, n.Next())
	checkLinks(t, &ls)

	n = ls.PopHead()
	require.Equal(t, "b", n.Val)
	require.Zero(t, ls.Len())
	checkLinks(t, &ls)
	require.Nil(t, ls.PopHead())

	// Draining must not leave a stale tail behind.
	push(&ls, false, "c")
	require.Equal(t, []string{"c"}, slices.Collect(ls.All()))
	checkLinks(t, &ls)
}

func TestSingleReverse(t *testing.T) {
	tests := []struct {
		name string
		in   []int
	}{
		{"Empty", nil},
		{"One", []int{1}},
		{"Two", []int{1, 2}},
		{"Many", []int{1, 2, 3, 4, 5, 6, 7}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var ls list.Single[int]
			push(&ls, false, test.in...)

			nodes := slices.Collect(ls.Nodes())
			ls.Reverse()
			checkLinks(t, &ls)

			want := slices.Clone(test.in)
			slices.Reverse(want)
			require.Equal(t, len(want), ls.Len())
			if len(want) > 0 {
				require.Equal(t, want, slices.Collect(ls.All()))
			}

			// The same nodes must be reused.
			slices.Reverse(nodes)
			got := slices.Collect(ls.Nodes())
			require.Equal(t, len(nodes), len(got))
			for i := range nodes {
				require.Same(t, nodes[i], got[i])
			}

			ls.Reverse()
			checkLinks(t, &ls)
			if len(test.in) > 0 {
				require.Equal(t, test.in, slices.Collect(ls.All()))
			}
		})
	}
}

func TestSingleAllBreak(t *testing.T) {
	var ls list.Single[int]
	push(&ls, false, 1, 2, 3)

	var got []int
	for v := range ls.All() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
}

func TestNilNodeNext(t *testing.T) {
	var n *list.SingleNode[int]
	if n.Next() != nil {
		t.Fatal("nil node has a successor")
	}
}
