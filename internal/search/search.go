// Package search answers name lookups against a snapshot.
//
// The guest list is small, so nothing is indexed; every query scans the
// snapshot it is given.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/seating"
)

// Search returns every guest whose name contains query, ignoring case, in
// table order and then seating order.
//
// A blank query returns nil, meaning no search was started. A query that
// matches nothing returns an empty, non-nil slice.
func Search(s models.Snapshot, query string) []models.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	fold := cases.Fold()
	needle := fold.String(query)

	results := []models.SearchResult{}
	for _, t := range s.Tables {
		for _, g := range t.Guests {
			if !strings.Contains(fold.String(g.Name), needle) {
				continue
			}
			results = append(results, models.SearchResult{
				TableID:     t.ID,
				GuestID:     g.ID,
				GuestName:   g.Name,
				Category:    t.Category,
				IsCheckedIn: g.IsCheckedIn,
				IsPlusOne:   g.IsPlusOne,
			})
		}
	}
	return results
}

// PlusOneCount returns how many companions guestID has at tableID.
func PlusOneCount(s models.Snapshot, tableID, guestID string) int {
	t, ok := s.Table(tableID)
	if !ok {
		return 0
	}
	return len(seating.Children(t, guestID))
}
