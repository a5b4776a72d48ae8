// Package restaurants holds the job-variable shapes shared by the
// restaurant workers and their conversion to engine types.
package restaurants

import (
	"errors"
	"fmt"
	"strings"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/filter"
)

// FilterSpec is a filter as it travels in process variables.
type FilterSpec struct {
	Action string `json:"action"`
	Tag    string `json:"tag"`
}

// CriteriaSpec is a bulk selection: several tags, one action.
type CriteriaSpec struct {
	Tags   []string `json:"tags"`
	Action string   `json:"action,omitempty"`
}

// ParseAction maps an action name to a filter action. Empty means include.
func ParseAction(s string) (filter.Action, error) {
	if strings.TrimSpace(s) == "" {
		return filter.Include, nil
	}
	a, err := filter.ParseAction(s)
	if err != nil {
		return 0, commonerrors.NewInvalidFilterFormatError(err.Error()).WithMetadata("action", s)
	}
	return a, nil
}

// ParseTag resolves a tag by identifier or display title.
func ParseTag(s string) (catalog.Tag, error) {
	t, err := catalog.ParseTag(s)
	if errors.Is(err, catalog.ErrUnknownTag) {
		return 0, commonerrors.NewUnknownTagError(s)
	}
	return t, err
}

// ParseFilter converts one spec.
func ParseFilter(spec FilterSpec) (filter.Filter, error) {
	action, err := ParseAction(spec.Action)
	if err != nil {
		return filter.Filter{}, err
	}
	tag, err := ParseTag(spec.Tag)
	if err != nil {
		return filter.Filter{}, err
	}
	return filter.Filter{Action: action, Tag: tag}, nil
}

// ParseFilters converts specs in order, keeping duplicates.
func ParseFilters(specs []FilterSpec) (filter.Set, error) {
	set := make(filter.Set, 0, len(specs))
	for i, spec := range specs {
		f, err := ParseFilter(spec)
		if err != nil {
			return nil, withIndex(err, i)
		}
		set = append(set, f)
	}
	return set, nil
}

// ParseCriteria converts a criteria spec. An empty tag list is allowed and
// expands to nothing.
func ParseCriteria(spec CriteriaSpec) (filter.Criteria, error) {
	action, err := ParseAction(spec.Action)
	if err != nil {
		return filter.Criteria{}, err
	}
	tags := make([]catalog.Tag, 0, len(spec.Tags))
	for _, name := range spec.Tags {
		tag, err := ParseTag(name)
		if err != nil {
			return filter.Criteria{}, err
		}
		tags = append(tags, tag)
	}
	return filter.NewCriteria(action, tags...), nil
}

// FilterSpecs renders a set with canonical names.
func FilterSpecs(set filter.Set) []FilterSpec {
	out := make([]FilterSpec, len(set))
	for i, f := range set {
		out[i] = FilterSpec{Action: f.Action.String(), Tag: f.Tag.String()}
	}
	return out
}

// TagNames renders tags by identifier.
func TagNames(tags []catalog.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

func withIndex(err error, i int) error {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.WithMetadata("filterIndex", i)
	}
	return fmt.Errorf("filters[%d]: %w", i, err)
}
