package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/damper"
)

func load(t *testing.T, path string) Scenario {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s, err := Load(data, damper.CodecFor(filepath.Ext(path)))
	require.NoError(t, err)
	return s
}

func TestRun_DebounceLatestCallWins(t *testing.T) {
	s := load(t, "testdata/search.yaml")

	res, err := Run(s)
	require.NoError(t, err)

	require.Len(t, res.Invocations, 1)
	inv := res.Invocations[0]
	assert.Equal(t, 400*time.Millisecond, inv.At)
	assert.Equal(t, "2", inv.Receiver)
	assert.Equal(t, []string{"b"}, inv.Args)
	assert.Equal(t, 2, res.Calls)
	assert.Equal(t, 1, res.Superseded)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, 400*time.Millisecond, res.End)
}

func TestRun_ThrottleLeadingEdge(t *testing.T) {
	s := load(t, "testdata/resize.json")

	res, err := Run(s)
	require.NoError(t, err)

	require.Len(t, res.Invocations, 2)
	assert.Equal(t, time.Duration(0), res.Invocations[0].At)
	assert.Equal(t, []string{"800"}, res.Invocations[0].Args)
	assert.Equal(t, 120*time.Millisecond, res.Invocations[1].At)
	assert.Equal(t, []string{"830"}, res.Invocations[1].Args)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, time.Second, res.End)
}

func TestRun_SortsCallsByTime(t *testing.T) {
	s := Scenario{
		Policy: damper.Policy{Mode: damper.ModeDebounce, Interval: damper.Duration(50 * time.Millisecond)},
		Calls: []Call{
			{At: damper.Duration(200 * time.Millisecond), Receiver: "late"},
			{At: 0, Receiver: "early"},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)

	require.Len(t, res.Invocations, 2)
	assert.Equal(t, "early", res.Invocations[0].Receiver)
	assert.Equal(t, 50*time.Millisecond, res.Invocations[0].At)
	assert.Equal(t, "late", res.Invocations[1].Receiver)
	assert.Equal(t, 250*time.Millisecond, res.Invocations[1].At)
}

func TestRun_Failures(t *testing.T) {
	s := Scenario{
		Policy: damper.Policy{Mode: damper.ModeThrottle, Interval: damper.Duration(100 * time.Millisecond)},
		Calls: []Call{
			{At: 0, Receiver: "a", Fail: true},
			{At: damper.Duration(100 * time.Millisecond), Receiver: "b"},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)

	require.Len(t, res.Invocations, 2, "failed call must not wedge the throttle")
	assert.ErrorIs(t, res.Invocations[0].Err, ErrSimulatedFailure)
	assert.NoError(t, res.Invocations[1].Err)
	assert.Equal(t, 1, res.Failures)
}

func TestRun_ForwardsMetrics(t *testing.T) {
	s := load(t, "testdata/search.yaml")
	m := &scheduledCounter{}

	_, err := Run(s, WithMetrics(m))
	require.NoError(t, err)
	assert.Equal(t, 2, m.scheduled)
}

func TestRun_NoCalls(t *testing.T) {
	s := Scenario{
		Policy: damper.Policy{Mode: damper.ModeDebounce, Interval: damper.Duration(time.Second)},
		Until:  damper.Duration(time.Second),
	}

	res, err := Run(s)
	require.NoError(t, err)
	assert.Empty(t, res.Invocations)
	assert.Equal(t, time.Second, res.End)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad mode":      "policy: {mode: batch, interval: 1s}",
		"negative at":   "policy: {mode: debounce, interval: 1s}\ncalls: [{at: -1s}]",
		"bad duration":  "policy: {mode: debounce, interval: soon}",
		"missing mode":  "policy: {interval: 1s}",
		"not a mapping": "- a",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(doc), damper.YAMLCodec{})
			assert.Error(t, err)
		})
	}
}

func TestRun_InvalidScenario(t *testing.T) {
	_, err := Run(Scenario{})
	assert.Error(t, err)
}

type scheduledCounter struct {
	damper.NoOpMetricsProvider
	scheduled int
}

func (c *scheduledCounter) OnScheduled(string) { c.scheduled++ }
