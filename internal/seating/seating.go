// Package seating implements the guest/table state transitions.
//
// Every operation takes a snapshot and returns a new one. The input is never
// mutated, so callers can apply the result optimistically and keep the old
// value around. Operations that reference an unknown table or guest return
// the input unchanged; that is not an error.
package seating

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/seatsync/internal/models"
)

// PlusOneSuffix is appended to the parent's name to label a new plus-one.
const PlusOneSuffix = "-companion"

// newID generates guest IDs. Overridden in tests for deterministic output.
var newID = func(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AddGuest appends a new primary guest to the end of a table.
func AddGuest(s models.Snapshot, tableID, name string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		t.Guests = append(t.Guests, models.Guest{
			ID:   newID("manual"),
			Name: name,
		})
		return true
	})
}

// AddPlusOne appends a companion for parentID to the end of the same table.
// The parent must be a primary guest seated at that table.
func AddPlusOne(s models.Snapshot, tableID, parentID string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		i := indexOf(t.Guests, parentID)
		if i < 0 || t.Guests[i].IsPlusOne {
			return false
		}
		t.Guests = append(t.Guests, models.Guest{
			ID:        newID("plusone"),
			Name:      t.Guests[i].Name + PlusOneSuffix,
			IsPlusOne: true,
			ParentID:  parentID,
		})
		return true
	})
}

// RemovePlusOne removes the most recently added companion of parentID.
func RemovePlusOne(s models.Snapshot, tableID, parentID string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		last := -1
		for i, g := range t.Guests {
			if IsChildOf(g, parentID) {
				last = i
			}
		}
		if last < 0 {
			return false
		}
		t.Guests = append(t.Guests[:last:last], t.Guests[last+1:]...)
		return true
	})
}

// RemoveGuest removes a guest and every companion attached to it.
func RemoveGuest(s models.Snapshot, tableID, guestID string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		if indexOf(t.Guests, guestID) < 0 {
			return false
		}
		t.Guests = filter(t.Guests, func(g models.Guest) bool {
			return g.ID != guestID && !IsChildOf(g, guestID)
		})
		return true
	})
}

// RenameGuest changes a guest's display name.
func RenameGuest(s models.Snapshot, tableID, guestID, name string) models.Snapshot {
	return updateGuest(s, tableID, guestID, func(g *models.Guest) {
		g.Name = name
	})
}

// ToggleCheckIn flips a guest's check-in flag.
func ToggleCheckIn(s models.Snapshot, tableID, guestID string) models.Snapshot {
	return updateGuest(s, tableID, guestID, func(g *models.Guest) {
		g.IsCheckedIn = !g.IsCheckedIn
	})
}

// UpdateCategory changes a table's category label.
func UpdateCategory(s models.Snapshot, tableID, category string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		t.Category = category
		return true
	})
}

// UpdateNote changes a table's note.
func UpdateNote(s models.Snapshot, tableID, note string) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		t.Note = note
		return true
	})
}

// MoveGuest moves a guest and its companions to the end of targetTableID,
// keeping their relative order. The total number of guests never changes:
// moving to the current table, to an unknown table, or moving an unknown
// guest is a no-op.
//
// A plus-one seated with its parent only moves together with the parent.
// A plus-one whose parent sits elsewhere can be moved on its own.
func MoveGuest(s models.Snapshot, guestID, targetTableID string) models.Snapshot {
	src, pos := locate(s, guestID)
	if src < 0 {
		return s
	}
	dst := tableIndex(s, targetTableID)
	if dst < 0 || dst == src {
		return s
	}

	source := s.Tables[src]
	guest := source.Guests[pos]
	if guest.IsPlusOne && indexOf(source.Guests, guest.ParentID) >= 0 {
		return s
	}

	moving := make([]models.Guest, 0, 1)
	staying := make([]models.Guest, 0, len(source.Guests))
	for _, g := range source.Guests {
		if g.ID == guestID || IsChildOf(g, guestID) {
			moving = append(moving, g)
		} else {
			staying = append(staying, g)
		}
	}

	out := shallowCopy(s)
	out.Tables[src].Guests = staying

	target := s.Tables[dst]
	guests := make([]models.Guest, 0, len(target.Guests)+len(moving))
	guests = append(guests, target.Guests...)
	out.Tables[dst].Guests = append(guests, moving...)
	return out
}

// FindGuest returns the guest with the given ID and the ID of its table.
func FindGuest(s models.Snapshot, guestID string) (models.Guest, string, bool) {
	ti, gi := locate(s, guestID)
	if ti < 0 {
		return models.Guest{}, "", false
	}
	return s.Tables[ti].Guests[gi], s.Tables[ti].ID, true
}

// IsChildOf reports whether g is a companion of parentID. Primary guests
// carry an empty ParentID, so an empty parentID matches nobody.
func IsChildOf(g models.Guest, parentID string) bool {
	return parentID != "" && g.IsPlusOne && g.ParentID == parentID
}

// Children returns the companions of parentID at a table, in seating order.
func Children(t models.Table, parentID string) []models.Guest {
	var out []models.Guest
	for _, g := range t.Guests {
		if IsChildOf(g, parentID) {
			out = append(out, g)
		}
	}
	return out
}

// updateTable copies the target table's guest slice, lets fn modify the copy,
// and returns a new snapshot. When fn reports no change, or the table does
// not exist, the input is returned as-is.
func updateTable(s models.Snapshot, tableID string, fn func(t *models.Table) bool) models.Snapshot {
	i := tableIndex(s, tableID)
	if i < 0 {
		return s
	}
	t := s.Tables[i]
	t.Guests = append(make([]models.Guest, 0, len(t.Guests)+1), t.Guests...)
	if !fn(&t) {
		return s
	}
	out := shallowCopy(s)
	out.Tables[i] = t
	return out
}

func updateGuest(s models.Snapshot, tableID, guestID string, fn func(g *models.Guest)) models.Snapshot {
	return updateTable(s, tableID, func(t *models.Table) bool {
		i := indexOf(t.Guests, guestID)
		if i < 0 {
			return false
		}
		fn(&t.Guests[i])
		return true
	})
}

// shallowCopy copies the table slice; guest slices are still shared and must
// be replaced, not modified, by the caller.
func shallowCopy(s models.Snapshot) models.Snapshot {
	return models.Snapshot{Tables: append([]models.Table(nil), s.Tables...)}
}

func tableIndex(s models.Snapshot, tableID string) int {
	for i, t := range s.Tables {
		if t.ID == tableID {
			return i
		}
	}
	return -1
}

func locate(s models.Snapshot, guestID string) (int, int) {
	for ti, t := range s.Tables {
		if gi := indexOf(t.Guests, guestID); gi >= 0 {
			return ti, gi
		}
	}
	return -1, -1
}

func indexOf(guests []models.Guest, guestID string) int {
	for i, g := range guests {
		if g.ID == guestID {
			return i
		}
	}
	return -1
}

func filter(guests []models.Guest, keep func(models.Guest) bool) []models.Guest {
	out := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

// CapacityWarning reports a table seated beyond its advisory capacity.
type CapacityWarning struct {
	TableID  string
	Seated   int
	Capacity int
}

func (w CapacityWarning) String() string {
	return fmt.Sprintf("table %s has %d guests (capacity %d)", w.TableID, w.Seated, w.Capacity)
}

// CapacityWarnings lists every table seated beyond its capacity, in table order.
func CapacityWarnings(s models.Snapshot) []CapacityWarning {
	var out []CapacityWarning
	for _, t := range s.Tables {
		if t.OverCapacity() {
			out = append(out, CapacityWarning{
				TableID:  t.ID,
				Seated:   len(t.Guests),
				Capacity: t.Capacity(),
			})
		}
	}
	return out
}
