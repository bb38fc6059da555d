package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/ringbuf"
)

const workedExample = `
capacity: 4
ops:
  - push: [1]
  - push: [2]
  - push: [3]
  - push: [4]
  - push: [5]
  - pop: 1
  - pop: 1
  - push: [5]
  - pop: 1
  - pop: 1
  - pop: 1
  - pop: 1
`

func TestReplayWorkedExample(t *testing.T) {
	tr, err := Parse([]byte(workedExample))
	require.NoError(t, err)

	steps := Replay(tr, ringbuf.New[int](tr.Capacity), zap.NewNop())
	require.Len(t, steps, 12)

	results := make([]string, len(steps))
	for i, s := range steps {
		results[i] = s.Result
	}
	assert.Equal(t, []string{
		ResultOK, ResultOK, ResultOK, ResultOK, ResultFull,
		ResultOK, ResultOK, ResultOK,
		ResultOK, ResultOK, ResultOK, ResultEmpty,
	}, results)

	assert.True(t, steps[3].Full)
	assert.Equal(t, 4, steps[4].Len)
	assert.Equal(t, []int{1}, steps[5].Values)
	assert.Equal(t, []int{2}, steps[6].Values)
	assert.Equal(t, []int{3}, steps[8].Values)
	assert.Equal(t, []int{4}, steps[9].Values)
	assert.Equal(t, []int{5}, steps[10].Values)
	assert.Empty(t, steps[11].Values)
	assert.Equal(t, 0, steps[11].Len)
}

func TestReplayBulk(t *testing.T) {
	tr := &Trace{
		Capacity: 3,
		Ops: []Op{
			{Push: []int{1, 2, 3, 4}},
			{Push: []int{5, 6}},
			{Pop: 2},
			{Pop: 5},
			{Pop: 2},
		},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	steps := Replay(tr, ringbuf.New[int](tr.Capacity), zap.New(core))
	require.Len(t, steps, 5)

	assert.Equal(t, Step{Index: 0, Op: "push_elements", Requested: 4, Transferred: 3, Values: []int{1, 2, 3}, Result: ResultTruncated, Len: 3, Full: true}, steps[0])
	assert.Equal(t, ResultFull, steps[1].Result)
	assert.Equal(t, 0, steps[1].Transferred)
	assert.Equal(t, Step{Index: 2, Op: "pop_elements", Requested: 2, Transferred: 2, Values: []int{1, 2}, Result: ResultOK, Len: 1}, steps[2])
	assert.Equal(t, Step{Index: 3, Op: "pop_elements", Requested: 5, Transferred: 1, Values: []int{3}, Result: ResultTruncated}, steps[3])
	assert.Equal(t, ResultEmpty, steps[4].Result)

	assert.Equal(t, 5, logs.FilterMessage("replayed op").Len())
}

func TestRender(t *testing.T) {
	steps := []Step{
		{Index: 0, Op: "push_elements", Requested: 3, Transferred: 2, Values: []int{7, 8}, Result: ResultTruncated, Len: 2, Full: true},
		{Index: 1, Op: "pop", Requested: 1, Result: ResultEmpty},
	}

	t.Run("Table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Render(&out, steps, OutputTable))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "TRANSFERRED")
		assert.Contains(t, lines[1], "7,8")
		assert.Contains(t, lines[1], "yes")
		assert.Contains(t, lines[2], "empty")
	})

	t.Run("JSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Render(&out, steps, OutputJSON))

		var decoded []Step
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, steps, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Render(&out, steps, OutputYAML))

		var decoded []Step
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, steps, decoded)
	})

	t.Run("Unknown", func(t *testing.T) {
		err := Render(&bytes.Buffer{}, steps, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})
}
