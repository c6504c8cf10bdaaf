package models

// HeadTableID is the ID of the distinguished head table.
const HeadTableID = "main"

const (
	// HeadTableCapacity is the advisory seat count of the head table.
	HeadTableCapacity = 12

	// TableCapacity is the advisory seat count of every other table.
	TableCapacity = 10
)

// Guest represents one seated person.
type Guest struct {
	// ID is the unique identifier for the guest across the whole snapshot.
	// It never changes once assigned.
	ID string `json:"id"`

	// Name is the display name shown on the seating chart.
	Name string `json:"name"`

	// IsPlusOne marks a companion added for another guest.
	// Fixed at creation.
	IsPlusOne bool `json:"isPlusOne"`

	// IsCheckedIn records whether the guest has arrived.
	IsCheckedIn bool `json:"isCheckedIn"`

	// ParentID is the ID of the primary guest this plus-one belongs to.
	// Empty for primary guests.
	ParentID string `json:"parentId,omitempty"`
}

// Table represents a seating table and its guests.
type Table struct {
	// ID is the table number, or HeadTableID for the head table.
	ID string `json:"id"`

	// Category is a free-text label (e.g., "Bride's family", "Vegetarian").
	Category string `json:"category"`

	// Guests is the seating order. Position determines seat numbers and
	// which plus-one is removed first.
	Guests []Guest `json:"guests"`

	// Note is an optional remark for staff (e.g., "High chair").
	Note string `json:"note,omitempty"`
}

// Capacity returns the advisory seat count for the table.
func (t Table) Capacity() int {
	return Capacity(t.ID)
}

// OverCapacity reports whether more guests are seated than the table holds.
// Exceeding capacity is allowed; callers only warn about it.
func (t Table) OverCapacity() bool {
	return len(t.Guests) > t.Capacity()
}

// Capacity returns the advisory seat count for the table with the given ID.
func Capacity(tableID string) int {
	if tableID == HeadTableID {
		return HeadTableCapacity
	}
	return TableCapacity
}

// Snapshot is the complete seating state at an instant.
// It is the document persisted to every backend.
type Snapshot struct {
	Tables []Table `json:"tables"`
}

// Table returns the table with the given ID.
func (s Snapshot) Table(id string) (Table, bool) {
	for _, t := range s.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// GuestCount returns the number of guests across all tables.
func (s Snapshot) GuestCount() int {
	n := 0
	for _, t := range s.Tables {
		n += len(t.Guests)
	}
	return n
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s.Tables == nil {
		return Snapshot{}
	}
	tables := make([]Table, len(s.Tables))
	for i, t := range s.Tables {
		t.Guests = append([]Guest(nil), t.Guests...)
		if t.Guests == nil {
			t.Guests = []Guest{}
		}
		tables[i] = t
	}
	return Snapshot{Tables: tables}
}

// SearchResult is one guest matched by name search, denormalized so callers
// never need to look the table up again.
type SearchResult struct {
	TableID     string `json:"tableId"`
	GuestID     string `json:"guestId"`
	GuestName   string `json:"guestName"`
	Category    string `json:"category"`
	IsCheckedIn bool   `json:"isCheckedIn"`
	IsPlusOne   bool   `json:"isPlusOne"`
}
