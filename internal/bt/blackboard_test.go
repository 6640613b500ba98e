package bt

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"
)

func TestBlackboard_BasicOperations(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)

	bb.SetValue("key1", 7)
	require.Equal(t, 7, bb.GetValue("key1"))

	// overwrite leaves no residue
	bb.SetValue("key1", 9)
	require.Equal(t, 9, bb.GetValue("key1"))

	require.True(t, bb.Has("key1"))
	require.False(t, bb.Has("nonexistent"))

	bb.Delete("key1")
	require.False(t, bb.Has("key1"))

	// deleting a missing key on a fresh board is a no-op
	new(Blackboard).Delete("missing")
}

func TestBlackboard_GetValueAutoVivifies(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	require.False(t, bb.Has("unset"))
	require.Equal(t, 0, bb.GetValue("unset"))
	require.True(t, bb.Has("unset"))
	require.Equal(t, 1, bb.Len())

	v, ok := bb.Lookup("unset")
	require.True(t, ok)
	require.Equal(t, 0, v)
}

func TestBlackboard_LookupDoesNotInsert(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	v, ok := bb.Lookup("missing")
	require.False(t, ok)
	require.Equal(t, 0, v)
	require.False(t, bb.Has("missing"))
	require.Equal(t, 0, bb.Len())

	bb.SetValue("present", -3)
	v, ok = bb.Lookup("present")
	require.True(t, ok)
	require.Equal(t, -3, v)
}

func TestBlackboard_Keys(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	require.Empty(t, bb.Keys())

	bb.SetValue("c", 3)
	bb.SetValue("a", 1)
	bb.SetValue("b", 2)

	require.Equal(t, []string{"a", "b", "c"}, bb.Keys())
}

func TestBlackboard_Clear(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	bb.SetValue("a", 1)
	bb.SetValue("b", 2)
	require.Equal(t, 2, bb.Len())

	bb.Clear()

	require.Equal(t, 0, bb.Len())
	require.False(t, bb.Has("a"))
	require.Equal(t, 0, bb.GetValue("b"))
}

func TestBlackboard_Snapshot(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	require.Empty(t, bb.Snapshot())

	bb.SetValue("a", 1)
	bb.SetValue("b", 2)

	snapshot := bb.Snapshot()
	require.Equal(t, map[string]int{"a": 1, "b": 2}, snapshot)

	snapshot["c"] = 3
	snapshot["a"] = 100
	require.False(t, bb.Has("c"))
	require.Equal(t, 1, bb.GetValue("a"))
}

func TestBlackboard_ThreadSafety(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	const workers = 8
	const iterations = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(3)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				bb.SetValue(fmt.Sprintf("w%d", w), i)
			}
		}(w)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = bb.GetValue(fmt.Sprintf("r%d-%d", w, i%10))
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = bb.Snapshot()
				_ = bb.Keys()
			}
		}()
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.Equal(t, iterations-1, bb.GetValue(fmt.Sprintf("w%d", w)))
	}
}

func TestBlackboard_ExposeToJS(t *testing.T) {
	t.Parallel()

	bb := new(Blackboard)
	bb.SetValue("hp", 10)

	vm := goja.New()
	require.NoError(t, vm.Set("blackboard", bb.ExposeToJS(vm)))

	v, err := vm.RunString(`
		blackboard.set("hp", blackboard.get("hp") - 4);
		blackboard.get("missing");
		blackboard.has("missing") && blackboard.len() === 2;
	`)
	require.NoError(t, err)
	require.Equal(t, true, v.Export())
	require.Equal(t, 6, bb.GetValue("hp"))

	_, err = vm.RunString(`blackboard.delete("hp"); blackboard.clear();`)
	require.NoError(t, err)
	require.Equal(t, 0, bb.Len())
}
