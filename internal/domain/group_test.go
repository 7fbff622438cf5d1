package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroup(t *testing.T) {
	t.Parallel()

	g, err := NewGroup(3, "  Math ")
	require.NoError(t, err)
	assert.Equal(t, GroupID(3), g.ID)
	assert.Equal(t, "Math", g.Name)
	assert.NotNil(t, g.Cards)
	assert.Empty(t, g.Cards)

	_, err = NewGroup(4, " \t ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrGroupNameEmpty))
}

func TestGroupCategories(t *testing.T) {
	t.Parallel()

	g := &Group{Cards: []Card{
		{ID: 1, Category: "b"},
		{ID: 2, Category: "a"},
		{ID: 3, Category: "b"},
		{ID: 4, Category: ""},
	}}
	assert.Equal(t, []string{CategoryAll, "a", "b"}, g.Categories())

	empty := &Group{}
	assert.Equal(t, []string{CategoryAll}, empty.Categories())
}

func TestGroupFilter(t *testing.T) {
	t.Parallel()

	g := &Group{Cards: []Card{
		{ID: 1, Category: "x"},
		{ID: 2, Category: "y"},
		{ID: 3, Category: "x"},
	}}

	all := g.Filter(CategoryAll)
	require.Len(t, all, 3)
	assert.Equal(t, CardID(1), all[0].ID)

	xs := g.Filter("x")
	require.Len(t, xs, 2)
	assert.Equal(t, CardID(1), xs[0].ID)
	assert.Equal(t, CardID(3), xs[1].ID)

	assert.Empty(t, g.Filter("missing"))

	// mutating the result must not touch the group
	all[0].EasyCount = 9
	assert.Equal(t, 0, g.Cards[0].EasyCount)
}

func TestGroupCardIndexAndClone(t *testing.T) {
	t.Parallel()

	g := &Group{ID: 1, Name: "g", Cards: []Card{{ID: 10}, {ID: 11}}}
	assert.Equal(t, 1, g.CardIndex(11))
	assert.Equal(t, -1, g.CardIndex(12))

	c := g.Clone()
	c.Cards[0].EasyCount = 5
	c.Name = "other"
	assert.Equal(t, 0, g.Cards[0].EasyCount)
	assert.Equal(t, "g", g.Name)
}
