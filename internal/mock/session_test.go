package mock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remock.dev/pkg/remock/internal/engine"
	"remock.dev/pkg/remock/internal/model"
)

func TestSession_AddMethodMockValidation(t *testing.T) {
	loader := engine.NewLoader()
	session := NewSession(loader)
	defer session.Close()

	tests := []struct {
		name        string
		typeName    string
		methodName  string
		replacement model.Callable
	}{
		{"empty type name", "", "m", returning(1)},
		{"blank type name", "   ", "m", returning(1)},
		{"empty method name", "C", "", returning(1)},
		{"nil replacement", "C", "m", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := session.AddMethodMock(tt.typeName, tt.methodName, tt.replacement, nil)
			require.Error(t, err)

			var valErr *ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}

	assert.Equal(t, 0, session.Registry().OverrideCount(model.NewMethodKey("C", "m")),
		"failed validation leaves no state behind")
}

func TestSession_NilPredicateMatchesEverything(t *testing.T) {
	loader := engine.NewLoader()
	session := NewSession(loader)
	defer session.Close()

	_, err := loader.Compile("a", `class Echo { fn say(word) { return word } }`)
	require.NoError(t, err)

	require.NoError(t, session.AddMethodMock("Echo", "say", returning("silence"), nil))

	obj := newestInstance(t, loader, "Echo")

	for _, word := range []string{"a", "b", "c"} {
		v, err := obj.Call("say", word)
		require.NoError(t, err)
		assert.Equal(t, "silence", v)
	}
}

func TestSession_CloseUnsubscribesBridge(t *testing.T) {
	loader := engine.NewLoader()
	session := NewSession(loader)

	require.NoError(t, session.AddMethodMock("Future", "m", returning("mocked"), nil))

	session.Close()
	session.Close() // idempotent

	_, err := loader.Compile("late", `class Future { fn m() { return "real" } }`)
	require.NoError(t, err)

	obj := newestInstance(t, loader, "Future")
	v, err := obj.Call("m")
	require.NoError(t, err)
	assert.Equal(t, "real", v, "a closed session no longer rewrites new loads")
}
