package seating

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mmynk/seatsync/internal/models"
)

// sequentialIDs makes generated guest IDs predictable for the test.
func sequentialIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	t.Cleanup(func() { newID = orig })
}

func fixture() models.Snapshot {
	return models.Snapshot{Tables: []models.Table{
		{ID: models.HeadTableID, Category: "Head", Guests: []models.Guest{{ID: "h", Name: "Lin"}}},
		{ID: "5", Category: "Family", Guests: []models.Guest{{ID: "a", Name: "Chen"}}},
		{ID: "7", Category: "Friends", Guests: []models.Guest{{ID: "x", Name: "Xu"}}},
	}}
}

func guestIDs(t models.Table) []string {
	ids := make([]string, 0, len(t.Guests))
	for _, g := range t.Guests {
		ids = append(ids, g.ID)
	}
	return ids
}

func mustTable(t *testing.T, s models.Snapshot, id string) models.Table {
	t.Helper()
	table, ok := s.Table(id)
	if !ok {
		t.Fatalf("table %q not found", id)
	}
	return table
}

func TestAddGuest(t *testing.T) {
	sequentialIDs(t)
	before := fixture()
	pristine := before.Clone()

	after := AddGuest(before, "5", "Wang")

	table := mustTable(t, after, "5")
	if len(table.Guests) != 2 {
		t.Fatalf("guests: expected 2, got %d", len(table.Guests))
	}
	added := table.Guests[1]
	if added.Name != "Wang" || added.IsPlusOne || added.IsCheckedIn || added.ParentID != "" {
		t.Errorf("unexpected new guest: %+v", added)
	}
	if added.ID != "manual-1" {
		t.Errorf("id: expected 'manual-1', got '%s'", added.ID)
	}
	if !reflect.DeepEqual(before, pristine) {
		t.Error("input snapshot was mutated")
	}

	t.Run("unknown table is a no-op", func(t *testing.T) {
		got := AddGuest(before, "99", "Nobody")
		if !reflect.DeepEqual(got, before) {
			t.Errorf("expected unchanged snapshot, got %+v", got)
		}
	})
}

func TestPlusOneScenario(t *testing.T) {
	sequentialIDs(t)
	s := fixture()

	s = AddPlusOne(s, "5", "a")
	table := mustTable(t, s, "5")
	if len(table.Guests) != 2 {
		t.Fatalf("guests: expected 2, got %d", len(table.Guests))
	}
	companion := table.Guests[1]
	if !companion.IsPlusOne || companion.ParentID != "a" || companion.Name != "Chen-companion" {
		t.Errorf("unexpected companion: %+v", companion)
	}

	s = RemovePlusOne(s, "5", "a")
	if got := guestIDs(mustTable(t, s, "5")); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("after RemovePlusOne: expected [a], got %v", got)
	}
}

func TestAddPlusOne_NoOps(t *testing.T) {
	sequentialIDs(t)
	base := AddPlusOne(fixture(), "5", "a")
	companionID := mustTable(t, base, "5").Guests[1].ID

	tests := []struct {
		name     string
		tableID  string
		parentID string
	}{
		{"unknown table", "99", "a"},
		{"parent at another table", "7", "a"},
		{"unknown parent", "5", "ghost"},
		{"parent is itself a plus-one", "5", companionID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddPlusOne(base, tt.tableID, tt.parentID)
			if !reflect.DeepEqual(got, base) {
				t.Errorf("expected unchanged snapshot")
			}
		})
	}
}

func TestRemovePlusOne_RemovesMostRecent(t *testing.T) {
	sequentialIDs(t)
	s := fixture()
	s = AddPlusOne(s, "5", "a") // plusone-1
	s = AddGuest(s, "5", "Wang") // manual-2
	s = AddPlusOne(s, "5", "a") // plusone-3

	s = RemovePlusOne(s, "5", "a")
	want := []string{"a", "plusone-1", "manual-2"}
	if got := guestIDs(mustTable(t, s, "5")); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	t.Run("no children is a no-op", func(t *testing.T) {
		got := RemovePlusOne(s, "5", "manual-2")
		if !reflect.DeepEqual(got, s) {
			t.Error("expected unchanged snapshot")
		}
	})

	t.Run("empty parent id is a no-op", func(t *testing.T) {
		got := RemovePlusOne(s, "5", "")
		if !reflect.DeepEqual(got, s) {
			t.Errorf("expected unchanged snapshot, got %v", guestIDs(mustTable(t, got, "5")))
		}
	})
}

func TestChildren(t *testing.T) {
	sequentialIDs(t)
	s := fixture()
	s = AddPlusOne(s, "5", "a") // plusone-1
	s = AddGuest(s, "5", "Wang") // manual-2
	s = AddPlusOne(s, "5", "a") // plusone-3
	table := mustTable(t, s, "5")

	if got := guestIDs(models.Table{Guests: Children(table, "a")}); !reflect.DeepEqual(got, []string{"plusone-1", "plusone-3"}) {
		t.Errorf("expected [plusone-1 plusone-3], got %v", got)
	}
	if got := Children(table, ""); len(got) != 0 {
		t.Errorf("empty parent id: expected no children, got %v", got)
	}
	if got := Children(table, "manual-2"); len(got) != 0 {
		t.Errorf("expected no children for manual-2, got %v", got)
	}
}

func TestRemoveGuest_CascadesToCompanions(t *testing.T) {
	sequentialIDs(t)
	s := fixture()
	s = AddGuest(s, "5", "Wang")
	s = AddPlusOne(s, "5", "a")
	s = AddPlusOne(s, "5", "a")
	s = AddPlusOne(s, "7", "x")

	before5 := len(mustTable(t, s, "5").Guests)
	before7 := len(mustTable(t, s, "7").Guests)

	s = RemoveGuest(s, "5", "a")

	if got := len(mustTable(t, s, "5").Guests); got != before5-3 {
		t.Errorf("table 5: expected %d guests, got %d", before5-3, got)
	}
	if got := len(mustTable(t, s, "7").Guests); got != before7 {
		t.Errorf("table 7: expected %d guests, got %d", before7, got)
	}
	if got := guestIDs(mustTable(t, s, "5")); !reflect.DeepEqual(got, []string{"manual-1"}) {
		t.Errorf("table 5: expected [manual-1], got %v", got)
	}

	t.Run("guest at another table is a no-op", func(t *testing.T) {
		got := RemoveGuest(s, "5", "x")
		if !reflect.DeepEqual(got, s) {
			t.Error("expected unchanged snapshot")
		}
	})
}

func TestFieldUpdates(t *testing.T) {
	s := fixture()

	t.Run("rename", func(t *testing.T) {
		got := RenameGuest(s, "5", "a", "Chen Wei")
		if name := mustTable(t, got, "5").Guests[0].Name; name != "Chen Wei" {
			t.Errorf("name: expected 'Chen Wei', got '%s'", name)
		}
		if name := mustTable(t, s, "5").Guests[0].Name; name != "Chen" {
			t.Errorf("input mutated: name is '%s'", name)
		}
	})

	t.Run("toggle check-in twice restores value", func(t *testing.T) {
		once := ToggleCheckIn(s, "5", "a")
		if !mustTable(t, once, "5").Guests[0].IsCheckedIn {
			t.Error("expected guest to be checked in")
		}
		twice := ToggleCheckIn(once, "5", "a")
		if !reflect.DeepEqual(twice, s) {
			t.Error("expected original snapshot after two toggles")
		}
	})

	t.Run("category and note", func(t *testing.T) {
		got := UpdateNote(UpdateCategory(s, "7", "Colleagues"), "7", "High chair")
		table := mustTable(t, got, "7")
		if table.Category != "Colleagues" || table.Note != "High chair" {
			t.Errorf("unexpected table: %+v", table)
		}
	})

	t.Run("unknown ids are no-ops", func(t *testing.T) {
		for _, got := range []models.Snapshot{
			RenameGuest(s, "5", "ghost", "x"),
			RenameGuest(s, "99", "a", "x"),
			ToggleCheckIn(s, "7", "a"),
			UpdateCategory(s, "99", "x"),
			UpdateNote(s, "99", "x"),
		} {
			if !reflect.DeepEqual(got, s) {
				t.Errorf("expected unchanged snapshot, got %+v", got)
			}
		}
	})
}

func TestMoveGuest_MovesGroupInOrder(t *testing.T) {
	s := models.Snapshot{Tables: []models.Table{
		{ID: "5", Guests: []models.Guest{
			{ID: "a", Name: "Chen"},
			{ID: "b", Name: "Lee"},
			{ID: "a2", Name: "Chen-companion", IsPlusOne: true, ParentID: "a"},
		}},
		{ID: "7", Guests: []models.Guest{{ID: "x", Name: "Xu"}}},
	}}
	pristine := s.Clone()

	got := MoveGuest(s, "a", "7")

	if ids := guestIDs(mustTable(t, got, "5")); !reflect.DeepEqual(ids, []string{"b"}) {
		t.Errorf("source: expected [b], got %v", ids)
	}
	if ids := guestIDs(mustTable(t, got, "7")); !reflect.DeepEqual(ids, []string{"x", "a", "a2"}) {
		t.Errorf("target: expected [x a a2], got %v", ids)
	}
	if got.GuestCount() != s.GuestCount() {
		t.Errorf("guest count: expected %d, got %d", s.GuestCount(), got.GuestCount())
	}
	if !reflect.DeepEqual(s, pristine) {
		t.Error("input snapshot was mutated")
	}
}

func TestMoveGuest_Scenario(t *testing.T) {
	s := models.Snapshot{Tables: []models.Table{
		{ID: "5", Guests: []models.Guest{
			{ID: "a", Name: "Chen"},
			{ID: "a2", Name: "Chen-companion", IsPlusOne: true, ParentID: "a"},
		}},
		{ID: "7", Guests: []models.Guest{{ID: "x", Name: "Xu"}}},
	}}

	got := MoveGuest(s, "a", "7")

	if n := len(mustTable(t, got, "5").Guests); n != 0 {
		t.Errorf("source: expected empty, got %d guests", n)
	}
	if ids := guestIDs(mustTable(t, got, "7")); !reflect.DeepEqual(ids, []string{"x", "a", "a2"}) {
		t.Errorf("target: expected [x a a2], got %v", ids)
	}
}

func TestMoveGuest_NoOps(t *testing.T) {
	s := models.Snapshot{Tables: []models.Table{
		{ID: "5", Guests: []models.Guest{
			{ID: "a", Name: "Chen"},
			{ID: "a2", Name: "Chen-companion", IsPlusOne: true, ParentID: "a"},
		}},
		{ID: "7", Guests: []models.Guest{{ID: "x", Name: "Xu"}}},
	}}

	tests := []struct {
		name    string
		guestID string
		target  string
	}{
		{"same table", "a", "5"},
		{"unknown guest", "ghost", "7"},
		{"unknown target table", "a", "99"},
		{"plus-one seated with its parent", "a2", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveGuest(s, tt.guestID, tt.target)
			if !reflect.DeepEqual(got, s) {
				t.Errorf("expected unchanged snapshot, got %+v", got)
			}
		})
	}
}

func TestMoveGuest_OrphanedPlusOneMovesAlone(t *testing.T) {
	s := models.Snapshot{Tables: []models.Table{
		{ID: "5", Guests: []models.Guest{{ID: "a", Name: "Chen"}}},
		{ID: "7", Guests: []models.Guest{
			{ID: "a2", Name: "Chen-companion", IsPlusOne: true, ParentID: "a"},
		}},
		{ID: "9", Guests: []models.Guest{}},
	}}

	got := MoveGuest(s, "a2", "9")

	moved := mustTable(t, got, "9").Guests
	if len(moved) != 1 || moved[0].ID != "a2" || moved[0].ParentID != "a" {
		t.Errorf("expected a2 at table 9 with parent a, got %+v", moved)
	}
	if n := len(mustTable(t, got, "7").Guests); n != 0 {
		t.Errorf("table 7: expected empty, got %d guests", n)
	}
}

func TestOperationsKeepIDsUnique(t *testing.T) {
	s := fixture()
	s = AddGuest(s, "5", "Wang")
	s = AddPlusOne(s, "5", "a")
	s = AddPlusOne(s, "5", "a")
	s = AddPlusOne(s, models.HeadTableID, "h")
	s = MoveGuest(s, "a", "7")
	s = RemovePlusOne(s, "7", "a")
	s = AddGuest(s, "7", "Zhao")

	if err := Validate(s); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tables  []models.Table
		wantErr error
	}{
		{
			name:    "duplicate table",
			tables:  []models.Table{{ID: "1"}, {ID: "1"}},
			wantErr: ErrDuplicateTable,
		},
		{
			name: "guest id reused across tables",
			tables: []models.Table{
				{ID: "1", Guests: []models.Guest{{ID: "g"}}},
				{ID: "2", Guests: []models.Guest{{ID: "g"}}},
			},
			wantErr: ErrDuplicateGuest,
		},
		{
			name:    "plus-one without parent",
			tables:  []models.Table{{ID: "1", Guests: []models.Guest{{ID: "g", IsPlusOne: true}}}},
			wantErr: ErrPlusOneParent,
		},
		{
			name: "companion of a companion",
			tables: []models.Table{{ID: "1", Guests: []models.Guest{
				{ID: "p"},
				{ID: "c1", IsPlusOne: true, ParentID: "p"},
				{ID: "c2", IsPlusOne: true, ParentID: "c1"},
			}}},
			wantErr: ErrNestedPlusOne,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(models.Snapshot{Tables: tt.tables})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if err := Validate(fixture()); err != nil {
		t.Errorf("fixture should be valid, got %v", err)
	}
}

func TestCapacityWarnings(t *testing.T) {
	s := fixture()
	for i := 0; i < models.HeadTableCapacity; i++ {
		s = AddGuest(s, models.HeadTableID, fmt.Sprintf("Head %d", i))
	}
	for i := 0; i < models.TableCapacity-1; i++ {
		s = AddGuest(s, "7", fmt.Sprintf("Friend %d", i))
	}

	warnings := CapacityWarnings(s)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	w := warnings[0]
	if w.TableID != models.HeadTableID || w.Seated != models.HeadTableCapacity+1 || w.Capacity != models.HeadTableCapacity {
		t.Errorf("unexpected warning: %+v", w)
	}

	s = AddGuest(s, "7", "One more")
	if got := len(CapacityWarnings(s)); got != 2 {
		t.Errorf("expected 2 warnings after overfilling table 7, got %d", got)
	}
}

func TestFindGuest(t *testing.T) {
	g, tableID, ok := FindGuest(fixture(), "x")
	if !ok || tableID != "7" || g.Name != "Xu" {
		t.Errorf("FindGuest: got %+v in %q (ok=%v)", g, tableID, ok)
	}
	if _, _, ok := FindGuest(fixture(), "ghost"); ok {
		t.Error("expected ghost to be missing")
	}
}
