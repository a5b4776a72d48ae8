// Package catalog holds the closed tag taxonomy and the embedded restaurant
// table.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"restaurant-workers/internal/geo"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTag   = errors.New("unknown tag")
	ErrDuplicateID  = errors.New("duplicate restaurant id")
	ErrMissingField = errors.New("missing field")
)

//go:embed data/restaurants.yaml
var embeddedTable []byte

// Catalog is an immutable, ordered set of restaurants.
type Catalog struct {
	version     string
	restaurants []Restaurant
	byID        map[string]int
}

type tableFile struct {
	Version     string        `yaml:"version"`
	Restaurants []tableRecord `yaml:"restaurants"`
}

type tableRecord struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Tags     []string       `yaml:"tags"`
	Location geo.Coordinate `yaml:"location"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedTable)
})

// Default returns the catalog compiled into the binary. It is parsed once.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads a YAML restaurant table.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML restaurant table.
func Parse(data []byte) (*Catalog, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(file.Restaurants))
	for i, rec := range file.Restaurants {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: id of record %d", ErrMissingField, i)
		}
		tags := make([]Tag, 0, len(rec.Tags))
		for _, name := range rec.Tags {
			t, err := ParseTag(name)
			if err != nil {
				return nil, fmt.Errorf("restaurant %s: %w", rec.ID, err)
			}
			tags = append(tags, t)
		}
		restaurants = append(restaurants, Restaurant{
			ID:       rec.ID,
			Title:    rec.Title,
			Tags:     tags,
			Location: rec.Location,
		})
	}

	return New(file.Version, restaurants)
}

// New builds a catalog from records in the given order. Records are copied.
func New(version string, restaurants []Restaurant) (*Catalog, error) {
	c := &Catalog{
		version:     version,
		restaurants: make([]Restaurant, len(restaurants)),
		byID:        make(map[string]int, len(restaurants)),
	}
	for i, r := range restaurants {
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		r.Tags = append([]Tag(nil), r.Tags...)
		c.restaurants[i] = r
		c.byID[r.ID] = i
	}
	return c, nil
}

// Version identifies the table revision.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of restaurants.
func (c *Catalog) Len() int { return len(c.restaurants) }

// Restaurants returns the records in catalog order. The slice is a copy;
// the records share tag slices with the catalog and must not be modified.
func (c *Catalog) Restaurants() []Restaurant {
	return append([]Restaurant(nil), c.restaurants...)
}

// Get looks up a restaurant by id.
func (c *Catalog) Get(id string) (Restaurant, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Restaurant{}, false
	}
	return c.restaurants[i], true
}
