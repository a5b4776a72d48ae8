// Package filter implements tag filters and their combination into a single
// restaurant predicate.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"restaurant-workers/internal/catalog"
)

var ErrUnknownAction = errors.New("unknown filter action")

// Action decides how a filter's tag constrains a restaurant.
type Action uint8

const (
	// Include requires the tag.
	Include Action = iota
	// Exclude forbids the tag.
	Exclude
	// Optional puts the tag in an any-of group with the other optional filters.
	Optional
)

var actionNames = [...]string{
	Include:  "include",
	Exclude:  "exclude",
	Optional: "optional",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Required reports whether the action takes part in the AND group.
func (a Action) Required() bool {
	return a == Include || a == Exclude
}

// ParseAction accepts the action names in any case.
func ParseAction(s string) (Action, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i, name := range actionNames {
		if name == needle {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) MarshalText() ([]byte, error) {
	if int(a) >= len(actionNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Predicate tests a single restaurant.
type Predicate func(catalog.Restaurant) bool

// Filter is an (action, tag) pair. Two filters are equal when both fields
// are equal.
type Filter struct {
	Action Action      `json:"action"`
	Tag    catalog.Tag `json:"tag"`
}

// Matches is the per-filter test. Optional uses the same containment test
// as Include; the difference lies in how Set combines them.
func (f Filter) Matches(r catalog.Restaurant) bool {
	switch f.Action {
	case Exclude:
		return !r.HasTag(f.Tag)
	default:
		return r.HasTag(f.Tag)
	}
}

// Predicate returns Matches as a function value.
func (f Filter) Predicate() Predicate {
	return f.Matches
}

func (f Filter) String() string {
	return f.Action.String() + ":" + f.Tag.String()
}
