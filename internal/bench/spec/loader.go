package spec

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/vector-bench/internal/apperr"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*RunSpec, error) {
	var s RunSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

var validBackendTypes = map[string]bool{
	"objectstore":   true,
	"elasticsearch": true,
	"postgres":      true,
	"memory":        true,
}

// Validate checks the spec and applies defaults. Violations are fatal
// configuration errors: nothing may run on a partially valid spec.
func Validate(s *RunSpec) error {
	if len(s.Backends) == 0 {
		return apperr.NewConfig("spec has no backends")
	}
	for name, b := range s.Backends {
		if b.Type == "" {
			return apperr.NewConfig(fmt.Sprintf("backend %q has no type", name))
		}
		if !validBackendTypes[b.Type] {
			return apperr.NewConfig(fmt.Sprintf("backend %q has invalid type %q", name, b.Type))
		}
		if b.Type != "memory" && b.Connection == "" {
			return apperr.NewConfig(fmt.Sprintf("backend %q has no connection", name))
		}
	}

	if s.Workload.Trials <= 0 {
		s.Workload.Trials = 1
	}
	if s.Workload.K <= 0 {
		s.Workload.K = 10
	}
	if s.Workload.Dimensions <= 0 {
		return apperr.NewConfig("workload has no dimensions")
	}
	if s.Workload.QueryCount <= 0 {
		s.Workload.QueryCount = 10
	}
	if s.Cost.StorageGB < 0 {
		return apperr.NewConfig("cost storage_gb must not be negative")
	}
	if s.Cost.MonthlyQueries < 0 {
		return apperr.NewConfig("cost monthly_queries must not be negative")
	}

	return nil
}
