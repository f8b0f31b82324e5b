package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "remock.dev/pkg/remock/internal/model"
)

func writeFile(t *testing.T, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func TestYAMLPlanStore_LoadPlan(t *testing.T) {
	path := writeFile(t, "plan.yaml", `
version: 1
mocks:
  - class: Counter
    method: report
    returns: '"mocked"'
  - class: Counter
    method: add
    returns: "100"
    when: "n > 10"
calls:
  - Counter.bump()
  - Counter.report()
`)

	store := NewYAMLPlanStore()

	plan, err := store.LoadPlan(path)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Version)
	require.Len(t, plan.Mocks, 2)
	assert.Equal(t, m.MockEntry{Class: "Counter", Method: "report", Returns: `"mocked"`}, plan.Mocks[0])
	assert.Equal(t, "n > 10", plan.Mocks[1].When)
	assert.Equal(t, []string{"Counter.bump()", "Counter.report()"}, plan.Calls)
}

func TestYAMLPlanStore_MissingFile(t *testing.T) {
	store := NewYAMLPlanStore()

	_, err := store.LoadPlan(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read plan")
}

func TestYAMLPlanStore_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "mocks: [unclosed")

	store := NewYAMLPlanStore()

	_, err := store.LoadPlan(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode plan")
}

func TestYAMLPlanStore_IncompleteEntry(t *testing.T) {
	path := writeFile(t, "incomplete.yaml", `
mocks:
  - class: Counter
    method: bump
`)

	store := NewYAMLPlanStore()

	_, err := store.LoadPlan(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock #1")
}
