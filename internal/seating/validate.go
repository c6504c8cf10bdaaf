package seating

import (
	"errors"
	"fmt"

	"github.com/mmynk/seatsync/internal/models"
)

var (
	ErrDuplicateTable = errors.New("duplicate table id")
	ErrDuplicateGuest = errors.New("duplicate guest id")
	ErrPlusOneParent  = errors.New("plus-one flag and parent id disagree")
	ErrNestedPlusOne  = errors.New("plus-one has its own companions")
)

// Validate checks the snapshot invariants and returns every violation found,
// joined into one error. A nil result means the snapshot is well-formed.
//
// A plus-one whose parent sits at another table is not a violation; that
// state is reachable through MoveGuest on orphaned data.
func Validate(s models.Snapshot) error {
	var errs []error

	tables := make(map[string]bool, len(s.Tables))
	guests := make(map[string]models.Guest)
	for _, t := range s.Tables {
		if tables[t.ID] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateTable, t.ID))
		}
		tables[t.ID] = true

		for _, g := range t.Guests {
			if _, seen := guests[g.ID]; seen {
				errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateGuest, g.ID))
			}
			guests[g.ID] = g
			if g.IsPlusOne != (g.ParentID != "") {
				errs = append(errs, fmt.Errorf("%w: guest %q", ErrPlusOneParent, g.ID))
			}
		}
	}

	nested := make(map[string]bool)
	for _, t := range s.Tables {
		for _, g := range t.Guests {
			parent, ok := guests[g.ParentID]
			if g.ParentID == "" || !ok || !parent.IsPlusOne || nested[parent.ID] {
				continue
			}
			nested[parent.ID] = true
			errs = append(errs, fmt.Errorf("%w: guest %q", ErrNestedPlusOne, parent.ID))
		}
	}

	return errors.Join(errs...)
}
