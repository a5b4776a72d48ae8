// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/pkg/registry"
)

const defaultRegistryPath = "pkg/registry/activities.json"

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	listPath := listCmd.String("path", defaultRegistryPath, "Path to registry file")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	taskType := updateCmd.String("taskType", "", "Task type to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, description)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*listPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		for _, a := range reg.Activities {
			fmt.Printf("%-24s %-12s timeout=%-4s retries=%d %s\n", a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries, a.Tags)
		}

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *taskType == "" || *field == "" || *value == "" {
			fmt.Println("Error: taskType, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *taskType, *field, *value); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *taskType, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := validateRegistry(reg); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "help":
		fallthrough
	default:
		help(os.Stdout)
	}
}

func updateActivity(path, taskType, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if err := applyUpdate(reg, taskType, field, value); err != nil {
		return err
	}
	if err := validateRegistry(reg); err != nil {
		return fmt.Errorf("update leaves registry invalid: %w", err)
	}

	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveRegistry(reg, path)
}

func applyUpdate(reg *registry.ActivityRegistry, taskType, field, value string) error {
	for i := range reg.Activities {
		a := &reg.Activities[i]
		if a.TaskType != taskType {
			continue
		}
		switch field {
		case "status":
			a.ImplementationStatus = value
		case "version":
			a.Version = value
		case "description":
			a.Description = value
		case "timeout":
			a.Timeout = value
		case "retries":
			retries, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid retries value: %w", err)
			}
			a.Retries = retries
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		return nil
	}
	return fmt.Errorf("activity with taskType %s not found", taskType)
}

// validateRegistry checks what the workers rely on at startup: every input
// schema compiles, timeouts parse, and declared error codes are known.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	for _, a := range reg.Activities {
		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.TaskType)
		}
		if a.InputSchema == nil {
			return fmt.Errorf("activity %s missing required field: InputSchema", a.TaskType)
		}
		if _, err := validation.Compile(a.InputSchema); err != nil {
			return fmt.Errorf("activity %s: %w", a.TaskType, err)
		}
		if _, err := time.ParseDuration(a.Timeout); err != nil {
			return fmt.Errorf("activity %s: invalid timeout %q", a.TaskType, a.Timeout)
		}
		if a.Retries < 0 {
			return fmt.Errorf("activity %s: retries must not be negative", a.TaskType)
		}
		for _, code := range a.ErrorCodes {
			if _, ok := commonerrors.BPMNErrorMapping[commonerrors.ErrorCode(code)]; !ok {
				return fmt.Errorf("activity %s: unknown error code %s", a.TaskType, code)
			}
		}
	}
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help(w io.Writer) {
	fmt.Fprint(w, `
Usage: registry-updater <command> [flags]

Commands:
  list     Print every registered activity
  update   Update an existing activity's field
  validate Validate the registry file
  help     Show this help message

Examples:
  registry-updater list
  registry-updater update -taskType rank-restaurants -field timeout -value 15s
  registry-updater validate -path pkg/registry/activities.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
