package tree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeycumines/btagent/internal/bt"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenario_Run(t *testing.T) {
	t.Parallel()

	bb := new(bt.Blackboard)
	var rec bt.Recorder
	tr := New(NewGuard(bb, &rec), bb)

	results, err := DefaultScenario().Run(context.Background(), tr)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, r := range results {
		require.Equal(t, i+1, r.Seq)
		require.Equal(t, bt.Success, r.State)
	}
	require.Equal(t, []string{
		"Action: Attaquer",
		"Action: Patrouiller",
		"Message: Coucou",
	}, rec.Labels())
	require.Equal(t, 0, bb.GetValue(KeyPlayerDetected))
}

func TestParseScenario(t *testing.T) {
	t.Parallel()

	s, err := ParseScenario([]byte(`
name: guard
blackboard:
  PlayerDetected: 1
ticks:
  - expect: success
  - set: {PlayerDetected: 0, Ammo: 3}
    expect: SUCCESS
  - {}
`))
	require.NoError(t, err)
	require.Equal(t, "guard", s.Name)
	require.Equal(t, map[string]int{"PlayerDetected": 1}, s.Blackboard)
	require.Len(t, s.Ticks, 3)
	require.Equal(t, map[string]int{"PlayerDetected": 0, "Ammo": 3}, s.Ticks[1].Set)
	require.Empty(t, s.Ticks[2].Expect)
}

func TestParseScenario_Errors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"no ticks", `name: x`},
		{"bad expect", "ticks:\n  - expect: done\n"},
		{"unknown field", "ticks:\n  - expect: success\nextra: 1\n"},
		{"non-integer value", "blackboard: {a: b}\nticks: [{}]\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseScenario([]byte(tc.src))
			require.Error(t, err)
		})
	}

	_, err := ParseScenario(nil)
	require.ErrorIs(t, err, ErrNoTicks)
}

func TestScenario_UnexpectedState(t *testing.T) {
	t.Parallel()

	bb := new(bt.Blackboard)
	tr := New(bt.NewCondition(bb, "ready", 1), bb)
	s := &Scenario{
		Ticks: []Step{
			{Set: map[string]int{"ready": 1}, Expect: "success"},
			{Set: map[string]int{"ready": 0}, Expect: "success"},
			{Expect: "failure"},
		},
	}

	results, err := s.Run(context.Background(), tr)
	require.ErrorIs(t, err, ErrUnexpectedState)
	require.Len(t, results, 2)
	require.Equal(t, bt.Failure, results[1].State)
	require.Equal(t, 2, tr.Ticks())
}

func TestScenario_RunCancelled(t *testing.T) {
	t.Parallel()

	bb := new(bt.Blackboard)
	tr := New(bt.NewAction("a", nil), bb)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := DefaultScenario().Run(ctx, tr)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, results)
	// seeding happens before the first tick is refused
	require.Equal(t, 1, bb.GetValue(KeyPlayerDetected))
}

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ticks:\n  - expect: failure\n"), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, s.Ticks, 1)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
