package bt

import (
	"errors"
	"testing"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/stretchr/testify/require"
)

func TestBehavior_TicksNode(t *testing.T) {
	t.Parallel()

	n := stub(Running)
	status, err := Behavior(n).Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Running, status)
	require.Equal(t, 1, n.calls)
}

func TestBehavior_ComposesWithGoBehaviorTree(t *testing.T) {
	t.Parallel()

	a, b := stub(Success), stub(Failure)
	root := bt.New(bt.Selector, Behavior(NewInvert(a)), Behavior(b))

	status, err := root.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Failure, status)
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)
}

func TestFromBehavior(t *testing.T) {
	t.Parallel()

	calls := 0
	leaf := bt.New(func([]bt.Node) (bt.Status, error) {
		calls++
		return bt.Success, nil
	})

	n := FromBehavior(leaf)
	require.Equal(t, Success, n.Execute())
	require.Equal(t, Failure, NewInvert(n).Execute())
	require.Equal(t, 2, calls)
}

func TestFromBehavior_ErrorIsFailure(t *testing.T) {
	t.Parallel()

	leaf := bt.New(func([]bt.Node) (bt.Status, error) {
		return bt.Success, errors.New("boom")
	})
	require.Equal(t, Failure, FromBehavior(leaf).Execute())
}

func TestFromBehavior_Memorize(t *testing.T) {
	t.Parallel()

	// go-behaviortree's Memorize only re-runs children that were running
	first, second := stub(Success), stub(Running)
	n := FromBehavior(bt.New(bt.Memorize(bt.Sequence), Behavior(first), Behavior(second)))

	require.Equal(t, Running, n.Execute())
	second.state = Success
	require.Equal(t, Success, n.Execute())
	require.Equal(t, 1, first.calls)
	require.Equal(t, 2, second.calls)
}

func TestBehavior_NilPanics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { Behavior(nil) })
	require.Panics(t, func() { FromBehavior(nil) })
}

func TestNodeFunc(t *testing.T) {
	t.Parallel()
	require.Equal(t, Running, NodeFunc(func() NodeState { return Running }).Execute())
}
