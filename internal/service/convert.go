package service

import (
	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/search"
	"github.com/mmynk/seatsync/internal/seating"
	pb "github.com/mmynk/seatsync/pkg/seatingv1"
)

func toProtoSnapshot(s models.Snapshot) *pb.Snapshot {
	tables := make([]*pb.Table, len(s.Tables))
	for i, t := range s.Tables {
		guests := make([]*pb.Guest, len(t.Guests))
		for j, g := range t.Guests {
			guests[j] = &pb.Guest{
				Id:          g.ID,
				Name:        g.Name,
				IsPlusOne:   g.IsPlusOne,
				IsCheckedIn: g.IsCheckedIn,
				ParentId:    g.ParentID,
				Seat:        int32(j + 1),
			}
		}
		tables[i] = &pb.Table{
			Id:       t.ID,
			Category: t.Category,
			Guests:   guests,
			Note:     t.Note,
			Capacity: int32(t.Capacity()),
		}
	}
	return &pb.Snapshot{Tables: tables}
}

func toProtoWarnings(s models.Snapshot) []*pb.CapacityWarning {
	warnings := seating.CapacityWarnings(s)
	out := make([]*pb.CapacityWarning, len(warnings))
	for i, w := range warnings {
		out[i] = &pb.CapacityWarning{
			TableId:  w.TableID,
			Seated:   int32(w.Seated),
			Capacity: int32(w.Capacity),
			Message:  w.String(),
		}
	}
	return out
}

// toProtoResults returns nil for a search that was not started.
func toProtoResults(s models.Snapshot, results []models.SearchResult) []*pb.SearchResult {
	if results == nil {
		return nil
	}
	out := make([]*pb.SearchResult, len(results))
	for i, r := range results {
		out[i] = &pb.SearchResult{
			TableId:     r.TableID,
			GuestId:     r.GuestID,
			GuestName:   r.GuestName,
			Category:    r.Category,
			IsCheckedIn: r.IsCheckedIn,
			IsPlusOne:   r.IsPlusOne,
			PlusOnes:    int32(search.PlusOneCount(s, r.TableID, r.GuestID)),
		}
	}
	return out
}
