// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed activities.json
var embedded []byte

var loadDefault = sync.OnceValues(func() (*ActivityRegistry, error) {
	return Parse(embedded)
})

// Default returns the registry compiled into the binary.
func Default() (*ActivityRegistry, error) {
	return loadDefault()
}

// LoadRegistry reads a registry file, for tooling that edits it on disk.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a registry and rejects duplicate task types.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	seen := make(map[string]bool, len(reg.Activities))
	for _, a := range reg.Activities {
		if a.TaskType == "" {
			return nil, fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if seen[a.TaskType] {
			return nil, fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true
	}
	return &reg, nil
}

// Lookup finds the activity for a task type.
func (r *ActivityRegistry) Lookup(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// TaskTypes lists task types in registry order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, len(r.Activities))
	for i, a := range r.Activities {
		out[i] = a.TaskType
	}
	return out
}

// InputSchema returns the embedded input schema for taskType. It panics if
// the task type is not registered; workers call it during construction.
func InputSchema(taskType string) map[string]interface{} {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	a, ok := reg.Lookup(taskType)
	if !ok {
		panic(fmt.Sprintf("registry: no activity for task type %q", taskType))
	}
	return a.InputSchema
}
