package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/seatsync/internal/models"
)

func fixture() models.Snapshot {
	return models.Snapshot{Tables: []models.Table{
		{ID: models.HeadTableID, Category: "Head", Guests: []models.Guest{
			{ID: "h1", Name: "Anna Chen"},
		}},
		{ID: "5", Category: "Family", Guests: []models.Guest{
			{ID: "a", Name: "Chen Wei", IsCheckedIn: true},
			{ID: "b", Name: "Lee"},
			{ID: "a2", Name: "Chen Wei-companion", IsPlusOne: true, ParentID: "a"},
		}},
		{ID: "7", Category: "Friends", Guests: []models.Guest{
			{ID: "x", Name: "Zoë Müller"},
		}},
	}}
}

func TestSearch(t *testing.T) {
	results := Search(fixture(), "  chen ")

	require.Len(t, results, 3)
	assert.Equal(t, []string{"h1", "a", "a2"}, []string{results[0].GuestID, results[1].GuestID, results[2].GuestID})

	first := results[1]
	assert.Equal(t, models.SearchResult{
		TableID:     "5",
		GuestID:     "a",
		GuestName:   "Chen Wei",
		Category:    "Family",
		IsCheckedIn: true,
	}, first)
	assert.True(t, results[2].IsPlusOne)
}

func TestSearch_BlankVersusNoMatch(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		assert.Nil(t, Search(fixture(), q), "query %q", q)
	}

	none := Search(fixture(), "nobody")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSearch_UnicodeCaseFolding(t *testing.T) {
	results := Search(fixture(), "MÜLLER")
	require.Len(t, results, 1)
	assert.Equal(t, "x", results[0].GuestID)
}

func TestPlusOneCount(t *testing.T) {
	s := fixture()
	assert.Equal(t, 1, PlusOneCount(s, "5", "a"))
	assert.Equal(t, 0, PlusOneCount(s, "5", "b"))
	assert.Equal(t, 0, PlusOneCount(s, "99", "a"))
	assert.Equal(t, 0, PlusOneCount(s, "5", ""), "primary guests are nobody's companions")
}
