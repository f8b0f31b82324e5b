package model

// Plan is a declarative mock plan loaded from YAML. Entries are applied in
// file order; because override lists are most-recent-first, a later entry for
// the same method takes precedence over an earlier one.
type Plan struct {
	Version int         `yaml:"version"`
	Mocks   []MockEntry `yaml:"mocks"`
	Calls   []string    `yaml:"calls"`
}

// MockEntry describes one override registration.
type MockEntry struct {
	Class   string `yaml:"class"`
	Method  string `yaml:"method"`
	Returns string `yaml:"returns"`
	When    string `yaml:"when,omitempty"`
}

// CallResult is the outcome of one scripted invocation.
type CallResult struct {
	Expr  string
	Value any
	Err   error
}
