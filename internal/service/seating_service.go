package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/search"
	"github.com/mmynk/seatsync/internal/seating"
	"github.com/mmynk/seatsync/internal/syncengine"
	pb "github.com/mmynk/seatsync/pkg/seatingv1"
	"github.com/mmynk/seatsync/pkg/seatingv1/seatingv1connect"
)

var errEmptyName = errors.New("name must not be empty")

// Engine is the part of the sync engine the service drives.
type Engine interface {
	Ready() <-chan struct{}
	Snapshot() models.Snapshot
	Mode() syncengine.Mode
	Apply(name string, op syncengine.Operation) (models.Snapshot, error)
	OnChange(fn func(models.Snapshot)) func()
}

// Alerts delivers user notifications to watch streams.
type Alerts interface {
	Subscribe(buffer int) (<-chan string, func())
}

// SeatingService implements the Connect SeatingService
type SeatingService struct {
	seatingv1connect.UnimplementedSeatingServiceHandler
	engine Engine
	alerts Alerts
}

// NewSeatingService creates a new SeatingService on top of engine.
// alerts may be nil, in which case watch streams carry snapshots only.
func NewSeatingService(engine Engine, alerts Alerts) *SeatingService {
	return &SeatingService{engine: engine, alerts: alerts}
}

// GetSnapshot returns the live seating state.
func (s *SeatingService) GetSnapshot(ctx context.Context, req *connect.Request[pb.GetSnapshotRequest]) (*connect.Response[pb.GetSnapshotResponse], error) {
	snap := s.engine.Snapshot()
	slog.Debug("GetSnapshot", "tables", len(snap.Tables), "guests", snap.GuestCount())

	return connect.NewResponse(&pb.GetSnapshotResponse{
		Snapshot: toProtoSnapshot(snap),
		Warnings: toProtoWarnings(snap),
		Mode:     s.engine.Mode().String(),
	}), nil
}

// Search finds guests by name.
func (s *SeatingService) Search(ctx context.Context, req *connect.Request[pb.SearchRequest]) (*connect.Response[pb.SearchResponse], error) {
	snap := s.engine.Snapshot()
	results := search.Search(snap, req.Msg.Query)

	slog.Info("Search", "query", req.Msg.Query, "matches", len(results))

	return connect.NewResponse(&pb.SearchResponse{
		Started: results != nil,
		Results: toProtoResults(snap, results),
	}), nil
}

// AddGuest seats a new primary guest at the end of a table.
func (s *SeatingService) AddGuest(ctx context.Context, req *connect.Request[pb.AddGuestRequest]) (*connect.Response[pb.MutationResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errEmptyName)
	}
	slog.Info("AddGuest request received", "table_id", req.Msg.TableId, "name", name)

	return s.apply("add_guest", func(snap models.Snapshot) models.Snapshot {
		return seating.AddGuest(snap, req.Msg.TableId, name)
	})
}

// AddPlusOne seats a companion for a primary guest.
func (s *SeatingService) AddPlusOne(ctx context.Context, req *connect.Request[pb.AddPlusOneRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("AddPlusOne request received", "table_id", req.Msg.TableId, "parent_id", req.Msg.ParentId)

	return s.apply("add_plus_one", func(snap models.Snapshot) models.Snapshot {
		return seating.AddPlusOne(snap, req.Msg.TableId, req.Msg.ParentId)
	})
}

// RemovePlusOne removes the most recently added companion of a guest.
func (s *SeatingService) RemovePlusOne(ctx context.Context, req *connect.Request[pb.RemovePlusOneRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("RemovePlusOne request received", "table_id", req.Msg.TableId, "parent_id", req.Msg.ParentId)

	return s.apply("remove_plus_one", func(snap models.Snapshot) models.Snapshot {
		return seating.RemovePlusOne(snap, req.Msg.TableId, req.Msg.ParentId)
	})
}

// RemoveGuest removes a guest together with their companions.
func (s *SeatingService) RemoveGuest(ctx context.Context, req *connect.Request[pb.RemoveGuestRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("RemoveGuest request received", "table_id", req.Msg.TableId, "guest_id", req.Msg.GuestId)

	return s.apply("remove_guest", func(snap models.Snapshot) models.Snapshot {
		return seating.RemoveGuest(snap, req.Msg.TableId, req.Msg.GuestId)
	})
}

// RenameGuest changes a guest's display name.
func (s *SeatingService) RenameGuest(ctx context.Context, req *connect.Request[pb.RenameGuestRequest]) (*connect.Response[pb.MutationResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errEmptyName)
	}
	slog.Info("RenameGuest request received", "table_id", req.Msg.TableId, "guest_id", req.Msg.GuestId, "name", name)

	return s.apply("rename_guest", func(snap models.Snapshot) models.Snapshot {
		return seating.RenameGuest(snap, req.Msg.TableId, req.Msg.GuestId, name)
	})
}

// ToggleCheckIn flips a guest's arrival flag.
func (s *SeatingService) ToggleCheckIn(ctx context.Context, req *connect.Request[pb.ToggleCheckInRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("ToggleCheckIn request received", "table_id", req.Msg.TableId, "guest_id", req.Msg.GuestId)

	return s.apply("toggle_check_in", func(snap models.Snapshot) models.Snapshot {
		return seating.ToggleCheckIn(snap, req.Msg.TableId, req.Msg.GuestId)
	})
}

// UpdateCategory relabels a table.
func (s *SeatingService) UpdateCategory(ctx context.Context, req *connect.Request[pb.UpdateCategoryRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("UpdateCategory request received", "table_id", req.Msg.TableId, "category", req.Msg.Category)

	return s.apply("update_category", func(snap models.Snapshot) models.Snapshot {
		return seating.UpdateCategory(snap, req.Msg.TableId, req.Msg.Category)
	})
}

// UpdateNote sets or clears a table's note.
func (s *SeatingService) UpdateNote(ctx context.Context, req *connect.Request[pb.UpdateNoteRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("UpdateNote request received", "table_id", req.Msg.TableId, "note", req.Msg.Note)

	return s.apply("update_note", func(snap models.Snapshot) models.Snapshot {
		return seating.UpdateNote(snap, req.Msg.TableId, req.Msg.Note)
	})
}

// MoveGuest moves a guest and their companions to another table.
func (s *SeatingService) MoveGuest(ctx context.Context, req *connect.Request[pb.MoveGuestRequest]) (*connect.Response[pb.MutationResponse], error) {
	slog.Info("MoveGuest request received", "guest_id", req.Msg.GuestId, "target_table_id", req.Msg.TargetTableId)
	if guest, from, ok := seating.FindGuest(s.engine.Snapshot(), req.Msg.GuestId); ok {
		slog.Debug("Moving guest", "name", guest.Name, "from_table_id", from, "target_table_id", req.Msg.TargetTableId)
	} else {
		slog.Debug("Guest not seated, move is a no-op", "guest_id", req.Msg.GuestId)
	}

	return s.apply("move_guest", func(snap models.Snapshot) models.Snapshot {
		return seating.MoveGuest(snap, req.Msg.GuestId, req.Msg.TargetTableId)
	})
}

// Watch streams the current snapshot, then every change and every alert,
// until the client goes away. Bursts of changes are coalesced into one event
// carrying the latest snapshot. Nothing is sent before the engine has adopted
// its first snapshot.
func (s *SeatingService) Watch(ctx context.Context, req *connect.Request[pb.WatchRequest], stream *connect.ServerStream[pb.WatchEvent]) error {
	select {
	case <-s.engine.Ready():
	case <-ctx.Done():
		return nil
	}

	changed := make(chan struct{}, 1)
	unsubscribe := s.engine.OnChange(func(models.Snapshot) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	var alerts <-chan string
	if s.alerts != nil {
		ch, cancel := s.alerts.Subscribe(4)
		defer cancel()
		alerts = ch
	}

	slog.Info("Watch stream opened")
	defer slog.Info("Watch stream closed")

	if err := s.sendSnapshot(stream); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := s.sendSnapshot(stream); err != nil {
				return err
			}
		case msg := <-alerts:
			if err := stream.Send(&pb.WatchEvent{Alert: msg, Mode: s.engine.Mode().String()}); err != nil {
				return err
			}
		}
	}
}

func (s *SeatingService) sendSnapshot(stream *connect.ServerStream[pb.WatchEvent]) error {
	return stream.Send(&pb.WatchEvent{
		Snapshot: toProtoSnapshot(s.engine.Snapshot()),
		Mode:     s.engine.Mode().String(),
	})
}

func (s *SeatingService) apply(name string, op syncengine.Operation) (*connect.Response[pb.MutationResponse], error) {
	snap, err := s.engine.Apply(name, op)
	if err != nil {
		slog.Error("Operation failed", "operation", name, "error", err)
		if errors.Is(err, syncengine.ErrNotReady) {
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&pb.MutationResponse{
		Snapshot: toProtoSnapshot(snap),
		Warnings: toProtoWarnings(snap),
		Mode:     s.engine.Mode().String(),
	}), nil
}
