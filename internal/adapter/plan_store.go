package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "remock.dev/pkg/remock/internal/model"
)

// PlanStore loads declarative mock plans.
type PlanStore interface {
	LoadPlan(path m.Path) (m.Plan, error)
}

// YAMLPlanStore reads plans from YAML files on the local filesystem.
type YAMLPlanStore struct{}

// NewYAMLPlanStore constructs a YAMLPlanStore.
func NewYAMLPlanStore() *YAMLPlanStore {
	return &YAMLPlanStore{}
}

// LoadPlan reads and decodes one plan file, validating each mock entry.
func (s *YAMLPlanStore) LoadPlan(path m.Path) (m.Plan, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Plan{}, fmt.Errorf("read plan: %w", err)
	}

	var plan m.Plan

	if err := yaml.Unmarshal(data, &plan); err != nil {
		return m.Plan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}

	for i, entry := range plan.Mocks {
		if entry.Class == "" || entry.Method == "" || entry.Returns == "" {
			return m.Plan{}, fmt.Errorf("plan %s: mock #%d needs class, method, and returns", path, i+1)
		}
	}

	return plan, nil
}
