package mock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remock.dev/pkg/remock/internal/model"
)

func always(v any) (model.Predicate, model.Callable) {
	return func(*model.Call) (bool, error) { return true, nil },
		func(*model.Call) (any, error) { return v, nil }
}

func TestOverrideList_NewestWins(t *testing.T) {
	list := &OverrideList{}

	p1, r1 := always("first")
	list.AddCondition(p1, r1)

	p2, r2 := always("second")
	list.AddCondition(p2, r2)

	require.Equal(t, 2, list.Len())

	replacement, matched, err := list.Evaluate(&model.Call{})
	require.NoError(t, err)
	require.True(t, matched)

	v, err := replacement(&model.Call{})
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestOverrideList_FallsThroughToOlderMatch(t *testing.T) {
	list := &OverrideList{}

	p1, r1 := always("broad")
	list.AddCondition(p1, r1)

	list.AddCondition(
		func(call *model.Call) (bool, error) {
			return len(call.Args) > 0 && call.Args[0] == "x", nil
		},
		func(*model.Call) (any, error) { return "narrow", nil },
	)

	replacement, matched, err := list.Evaluate(&model.Call{Args: []any{"x"}})
	require.NoError(t, err)
	require.True(t, matched)
	v, _ := replacement(nil)
	assert.Equal(t, "narrow", v)

	replacement, matched, err = list.Evaluate(&model.Call{Args: []any{"y"}})
	require.NoError(t, err)
	require.True(t, matched)
	v, _ = replacement(nil)
	assert.Equal(t, "broad", v)
}

func TestOverrideList_NoMatchIsNotAnError(t *testing.T) {
	list := &OverrideList{}

	list.AddCondition(
		func(*model.Call) (bool, error) { return false, nil },
		func(*model.Call) (any, error) { return "never", nil },
	)

	replacement, matched, err := list.Evaluate(&model.Call{})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, replacement)
}

func TestOverrideList_PredicateErrorFailsEvaluation(t *testing.T) {
	list := &OverrideList{}

	p, r := always("reachable")
	list.AddCondition(p, r)

	list.AddCondition(
		func(*model.Call) (bool, error) { return false, fmt.Errorf("boom") },
		func(*model.Call) (any, error) { return nil, nil },
	)

	_, _, err := list.Evaluate(&model.Call{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestOverrideList_EmptyEvaluates(t *testing.T) {
	list := &OverrideList{}

	replacement, matched, err := list.Evaluate(&model.Call{})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, replacement)
	assert.Equal(t, 0, list.Len())
}
