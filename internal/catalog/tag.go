package catalog

import (
	"fmt"
	"strings"
)

// Category groups tags for filtering dialogs.
type Category uint8

const (
	Ethnicity Category = iota
	FoodItem
	Other
)

var categoryNames = [...]string{
	Ethnicity: "Ethnicity",
	FoodItem:  "FoodItem",
	Other:     "Other",
}

// categoryTitles are the group headings shown to users.
var categoryTitles = [...]string{
	Ethnicity: "Ethnicity",
	FoodItem:  "Food Items",
	Other:     "Other",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Title is the display heading for the category.
func (c Category) Title() string {
	if int(c) < len(categoryTitles) {
		return categoryTitles[c]
	}
	return c.String()
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{Ethnicity, FoodItem, Other}
}

// Tag is one of a closed set of labels a restaurant can carry.
type Tag uint8

const (
	Italian Tag = iota
	Japanese
	American
	Mexican
	Asian
	Chinese
	Seafood
	Sushi
	Pizza
	Salad
	Steak
	Burger
	Coffee
	Sandwich
	Wings
	Hibachi
	Buffet
	Milkshakes
	IceCream
	Wine
	Beer
	Dessert
	Breakfast
	Brunch
	Bar
	FastFood
	Delivery

	tagCount
)

type tagInfo struct {
	name     string
	title    string
	category Category
}

var tagTable = [tagCount]tagInfo{
	Italian:    {"Italian", "Italian", Ethnicity},
	Japanese:   {"Japanese", "Japanese", Ethnicity},
	American:   {"American", "American", Ethnicity},
	Mexican:    {"Mexican", "Mexican", Ethnicity},
	Asian:      {"Asian", "Asian", Ethnicity},
	Chinese:    {"Chinese", "Chinese", Ethnicity},
	Seafood:    {"Seafood", "Seafood", FoodItem},
	Sushi:      {"Sushi", "Sushi", FoodItem},
	Pizza:      {"Pizza", "Pizza", FoodItem},
	Salad:      {"Salad", "Salad", FoodItem},
	Steak:      {"Steak", "Steak", FoodItem},
	Burger:     {"Burger", "Burger", FoodItem},
	Coffee:     {"Coffee", "Coffee", FoodItem},
	Sandwich:   {"Sandwich", "Sandwich", FoodItem},
	Wings:      {"Wings", "Wings", FoodItem},
	Hibachi:    {"Hibachi", "Hibachi", FoodItem},
	Buffet:     {"Buffet", "Buffet", FoodItem},
	Milkshakes: {"Milkshakes", "Milkshakes", FoodItem},
	IceCream:   {"IceCream", "Ice Cream", FoodItem},
	Wine:       {"Wine", "Wine", FoodItem},
	Beer:       {"Beer", "Beer", FoodItem},
	Dessert:    {"Dessert", "Dessert", FoodItem},
	Breakfast:  {"Breakfast", "Breakfast", Other},
	Brunch:     {"Brunch", "Brunch", Other},
	Bar:        {"Bar", "Bar", Other},
	FastFood:   {"FastFood", "Fast Food", Other},
	Delivery:   {"Delivery", "Delivery", Other},
}

// tagIndex resolves identifiers and titles, lowercased.
var tagIndex = func() map[string]Tag {
	idx := make(map[string]Tag, 2*int(tagCount))
	for i, info := range tagTable {
		idx[strings.ToLower(info.name)] = Tag(i)
		idx[strings.ToLower(info.title)] = Tag(i)
	}
	return idx
}()

// Tags returns every tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, tagCount)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool { return t < tagCount }

// String returns the tag identifier, e.g. "IceCream".
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", t)
	}
	return tagTable[t].name
}

// Title returns the display name, e.g. "Ice Cream".
func (t Tag) Title() string {
	if !t.Valid() {
		return t.String()
	}
	return tagTable[t].title
}

// Category returns the single category the tag belongs to.
func (t Tag) Category() Category {
	if !t.Valid() {
		return Other
	}
	return tagTable[t].category
}

// ParseTag resolves an identifier or display title, ignoring case and
// surrounding space.
func ParseTag(s string) (Tag, error) {
	if t, ok := tagIndex[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// MarshalText encodes the tag as its identifier.
func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts anything ParseTag accepts.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TagGroup is a titled list of tags sharing a category.
type TagGroup struct {
	Category Category
	Title    string
	Tags     []Tag
}

// TagGroups partitions the taxonomy by category, each group in declaration
// order.
func TagGroups() []TagGroup {
	groups := make([]TagGroup, 0, len(categoryNames))
	for _, c := range Categories() {
		g := TagGroup{Category: c, Title: c.Title()}
		for _, t := range Tags() {
			if t.Category() == c {
				g.Tags = append(g.Tags, t)
			}
		}
		groups = append(groups, g)
	}
	return groups
}
