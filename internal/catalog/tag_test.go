package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_EveryTagHasOneCategory(t *testing.T) {
	seen := map[Tag]int{}
	for _, g := range TagGroups() {
		for _, tag := range g.Tags {
			seen[tag]++
			assert.Equal(t, g.Category, tag.Category())
		}
	}
	assert.Len(t, seen, len(Tags()))
	for tag, n := range seen {
		assert.Equal(t, 1, n, "tag %s", tag)
	}
}

func TestTagGroups_TitlesAndOrder(t *testing.T) {
	groups := TagGroups()
	require.Len(t, groups, 3)

	assert.Equal(t, "Ethnicity", groups[0].Title)
	assert.Equal(t, []Tag{Italian, Japanese, American, Mexican, Asian, Chinese}, groups[0].Tags)
	assert.Equal(t, "Food Items", groups[1].Title)
	assert.Equal(t, Seafood, groups[1].Tags[0])
	assert.Equal(t, Dessert, groups[1].Tags[len(groups[1].Tags)-1])
	assert.Equal(t, "Other", groups[2].Title)
	assert.Equal(t, []Tag{Breakfast, Brunch, Bar, FastFood, Delivery}, groups[2].Tags)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{in: "Burger", want: Burger},
		{in: "burger", want: Burger},
		{in: "  IceCream ", want: IceCream},
		{in: "Ice Cream", want: IceCream},
		{in: "fast food", want: FastFood},
		{in: "FastFood", want: FastFood},
		{in: "Tofu", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTag_TextEncoding(t *testing.T) {
	data, err := json.Marshal([]Tag{IceCream, Bar})
	require.NoError(t, err)
	assert.JSONEq(t, `["IceCream","Bar"]`, string(data))

	var back []Tag
	require.NoError(t, json.Unmarshal([]byte(`["Ice Cream","bar"]`), &back))
	assert.Equal(t, []Tag{IceCream, Bar}, back)

	_, err = Tag(200).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownTag)
	assert.Equal(t, "Tag(200)", Tag(200).String())
}
