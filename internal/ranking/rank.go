// Package ranking narrows the catalog with a filter set and orders the
// survivors by distance from a reference location.
package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/geo"
)

var ErrUnknownOrder = errors.New("unknown ranking order")

// Order is the sort direction applied to filtered restaurants.
type Order uint8

const (
	// FarthestFirst sorts by descending distance from the reference.
	//
	// NOTE: this is the shipped behavior and stays the default, even though
	// it reads like an inverted nearest-first sort. Whether to flip it is a
	// product call; set ranking.order to nearest_first to do so.
	FarthestFirst Order = iota
	// NearestFirst sorts by ascending distance from the reference.
	NearestFirst
)

var orderNames = [...]string{
	FarthestFirst: "farthest_first",
	NearestFirst:  "nearest_first",
}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", o)
}

// ParseOrder is case-insensitive and accepts '-' in place of '_'.
func ParseOrder(s string) (Order, error) {
	needle := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range orderNames {
		if name == needle {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

func (o Order) MarshalText() ([]byte, error) {
	if int(o) >= len(orderNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOrder, uint8(o))
	}
	return []byte(o.String()), nil
}

func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Scored is a ranked restaurant with its distance from the reference.
type Scored struct {
	Restaurant catalog.Restaurant
	DistanceKm float64
}

// Rank filters restaurants with set and sorts the result farthest first.
// Catalog order breaks distance ties.
func Rank(restaurants []catalog.Restaurant, set filter.Set, ref geo.Coordinate) []catalog.Restaurant {
	return RankWithOrder(restaurants, set, ref, FarthestFirst)
}

// RankWithOrder is Rank with an explicit sort direction.
func RankWithOrder(restaurants []catalog.Restaurant, set filter.Set, ref geo.Coordinate, order Order) []catalog.Restaurant {
	scored := Score(restaurants, set, ref, order)
	out := make([]catalog.Restaurant, len(scored))
	for i, s := range scored {
		out[i] = s.Restaurant
	}
	return out
}

// Score filters and sorts like RankWithOrder and keeps each distance.
func Score(restaurants []catalog.Restaurant, set filter.Set, ref geo.Coordinate, order Order) []Scored {
	matches := set.Predicate()

	out := make([]Scored, 0, len(restaurants))
	for _, r := range restaurants {
		if matches(r) {
			out = append(out, Scored{Restaurant: r, DistanceKm: geo.Distance(ref, r.Location)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == NearestFirst {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].DistanceKm > out[j].DistanceKm
	})
	return out
}

// Engine binds a catalog to a sort direction.
type Engine struct {
	restaurants []catalog.Restaurant
	version     string
	order       Order
}

// NewEngine snapshots the catalog's restaurants.
func NewEngine(cat *catalog.Catalog, order Order) *Engine {
	return &Engine{
		restaurants: cat.Restaurants(),
		version:     cat.Version(),
		order:       order,
	}
}

func (e *Engine) Order() Order { return e.order }

func (e *Engine) CatalogVersion() string { return e.version }

func (e *Engine) Rank(set filter.Set, ref geo.Coordinate) []catalog.Restaurant {
	return RankWithOrder(e.restaurants, set, ref, e.order)
}

func (e *Engine) Score(set filter.Set, ref geo.Coordinate) []Scored {
	return Score(e.restaurants, set, ref, e.order)
}
