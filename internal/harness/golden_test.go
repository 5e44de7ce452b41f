package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nvfuse/internal/passes"
)

func TestRunWithGolden_AddMulTrace(t *testing.T) {
	result, err := RunWithGolden(t, loadScenario(t, "addmul_trace"))
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	trace := []passes.Event{{Seq: 1, Category: "value", Variant: "Int", Node: 0}}
	a, err := MarshalSnapshot("s", PassTrace, trace)
	require.NoError(t, err)
	b, err := MarshalSnapshot("s", PassTrace, trace)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"pass":"trace","scenario_name":"s","trace":[{"category":"value","node":0,"seq":1,"variant":"Int"}]}`, string(a))
}

func TestMarshalSnapshot_EmptyTrace(t *testing.T) {
	data, err := MarshalSnapshot("empty", PassPrint, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"pass":"print","scenario_name":"empty","trace":[]}`, string(data))
}
