package filter

import (
	"restaurant-workers/internal/catalog"
)

// Set is an ordered list of active filters. Order is kept for display only.
// Equal filters may appear more than once; evaluation is unaffected but
// Remove drops one copy at a time.
type Set []Filter

// Predicate splits the set into its required and optional groups and returns
// the combined test. Call it again after the set changes.
func (s Set) Predicate() Predicate {
	var required, optional []Filter
	for _, f := range s {
		if f.Action.Required() {
			required = append(required, f)
		} else {
			optional = append(optional, f)
		}
	}

	return func(r catalog.Restaurant) bool {
		for _, f := range required {
			if !f.Matches(r) {
				return false
			}
		}
		if len(optional) == 0 {
			return true
		}
		for _, f := range optional {
			if f.Matches(r) {
				return true
			}
		}
		return false
	}
}

// Evaluate reports whether r survives every filter in s. An empty set
// accepts everything.
func (s Set) Evaluate(r catalog.Restaurant) bool {
	return s.Predicate()(r)
}

// Add appends one filter per criteria tag. Existing entries are not checked,
// so adding a filter that is already present yields two equal entries.
func (s Set) Add(c Criteria) Set {
	added := c.Filters()
	out := make(Set, 0, len(s)+len(added))
	out = append(out, s...)
	return append(out, added...)
}

// Remove drops the first entry equal to f. If none matches the result is an
// unchanged copy.
func (s Set) Remove(f Filter) Set {
	out := make(Set, 0, len(s))
	removed := false
	for _, existing := range s {
		if !removed && existing == f {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	return out
}

// Equal compares two sets entry by entry.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Criteria is a bulk selection: a set of tags sharing one action.
type Criteria struct {
	Action Action
	Tags   []catalog.Tag
}

// NewCriteria builds criteria for action over tags.
func NewCriteria(action Action, tags ...catalog.Tag) Criteria {
	return Criteria{Action: action, Tags: tags}
}

// Filters expands the criteria into one filter per distinct tag, in the order
// tags were first selected.
func (c Criteria) Filters() []Filter {
	tags := make([]catalog.Tag, 0, len(c.Tags))
	seen := make(map[catalog.Tag]bool, len(c.Tags))
	for _, t := range c.Tags {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	out := make([]Filter, len(tags))
	for i, t := range tags {
		out[i] = Filter{Action: c.Action, Tag: t}
	}
	return out
}
