// Package seatingv1connect wires the seating.v1 API to Connect handlers and
// clients.
package seatingv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	seatingv1 "github.com/mmynk/seatsync/pkg/seatingv1"
)

// SeatingServiceName is the fully-qualified name of the SeatingService service.
const SeatingServiceName = "seating.v1.SeatingService"

// Procedure paths of the SeatingService RPCs.
const (
	SeatingServiceGetSnapshotProcedure    = "/seating.v1.SeatingService/GetSnapshot"
	SeatingServiceSearchProcedure         = "/seating.v1.SeatingService/Search"
	SeatingServiceAddGuestProcedure       = "/seating.v1.SeatingService/AddGuest"
	SeatingServiceAddPlusOneProcedure     = "/seating.v1.SeatingService/AddPlusOne"
	SeatingServiceRemovePlusOneProcedure  = "/seating.v1.SeatingService/RemovePlusOne"
	SeatingServiceRemoveGuestProcedure    = "/seating.v1.SeatingService/RemoveGuest"
	SeatingServiceRenameGuestProcedure    = "/seating.v1.SeatingService/RenameGuest"
	SeatingServiceToggleCheckInProcedure  = "/seating.v1.SeatingService/ToggleCheckIn"
	SeatingServiceUpdateCategoryProcedure = "/seating.v1.SeatingService/UpdateCategory"
	SeatingServiceUpdateNoteProcedure     = "/seating.v1.SeatingService/UpdateNote"
	SeatingServiceMoveGuestProcedure      = "/seating.v1.SeatingService/MoveGuest"
	SeatingServiceWatchProcedure          = "/seating.v1.SeatingService/Watch"
)

// SeatingServiceHandler is implemented by the server side of the API.
type SeatingServiceHandler interface {
	GetSnapshot(context.Context, *connect.Request[seatingv1.GetSnapshotRequest]) (*connect.Response[seatingv1.GetSnapshotResponse], error)
	Search(context.Context, *connect.Request[seatingv1.SearchRequest]) (*connect.Response[seatingv1.SearchResponse], error)
	AddGuest(context.Context, *connect.Request[seatingv1.AddGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	AddPlusOne(context.Context, *connect.Request[seatingv1.AddPlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RemovePlusOne(context.Context, *connect.Request[seatingv1.RemovePlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RemoveGuest(context.Context, *connect.Request[seatingv1.RemoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RenameGuest(context.Context, *connect.Request[seatingv1.RenameGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	ToggleCheckIn(context.Context, *connect.Request[seatingv1.ToggleCheckInRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	UpdateCategory(context.Context, *connect.Request[seatingv1.UpdateCategoryRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	UpdateNote(context.Context, *connect.Request[seatingv1.UpdateNoteRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	MoveGuest(context.Context, *connect.Request[seatingv1.MoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	Watch(context.Context, *connect.Request[seatingv1.WatchRequest], *connect.ServerStream[seatingv1.WatchEvent]) error
}

// NewSeatingServiceHandler builds an HTTP handler for svc. The returned path
// is the prefix to mount the handler on.
//
// The JSON codec is registered first, so callers may add their own options.
func NewSeatingServiceHandler(svc SeatingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(seatingv1.JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SeatingServiceGetSnapshotProcedure, connect.NewUnaryHandler(SeatingServiceGetSnapshotProcedure, svc.GetSnapshot, opts...))
	mux.Handle(SeatingServiceSearchProcedure, connect.NewUnaryHandler(SeatingServiceSearchProcedure, svc.Search, opts...))
	mux.Handle(SeatingServiceAddGuestProcedure, connect.NewUnaryHandler(SeatingServiceAddGuestProcedure, svc.AddGuest, opts...))
	mux.Handle(SeatingServiceAddPlusOneProcedure, connect.NewUnaryHandler(SeatingServiceAddPlusOneProcedure, svc.AddPlusOne, opts...))
	mux.Handle(SeatingServiceRemovePlusOneProcedure, connect.NewUnaryHandler(SeatingServiceRemovePlusOneProcedure, svc.RemovePlusOne, opts...))
	mux.Handle(SeatingServiceRemoveGuestProcedure, connect.NewUnaryHandler(SeatingServiceRemoveGuestProcedure, svc.RemoveGuest, opts...))
	mux.Handle(SeatingServiceRenameGuestProcedure, connect.NewUnaryHandler(SeatingServiceRenameGuestProcedure, svc.RenameGuest, opts...))
	mux.Handle(SeatingServiceToggleCheckInProcedure, connect.NewUnaryHandler(SeatingServiceToggleCheckInProcedure, svc.ToggleCheckIn, opts...))
	mux.Handle(SeatingServiceUpdateCategoryProcedure, connect.NewUnaryHandler(SeatingServiceUpdateCategoryProcedure, svc.UpdateCategory, opts...))
	mux.Handle(SeatingServiceUpdateNoteProcedure, connect.NewUnaryHandler(SeatingServiceUpdateNoteProcedure, svc.UpdateNote, opts...))
	mux.Handle(SeatingServiceMoveGuestProcedure, connect.NewUnaryHandler(SeatingServiceMoveGuestProcedure, svc.MoveGuest, opts...))
	mux.Handle(SeatingServiceWatchProcedure, connect.NewServerStreamHandler(SeatingServiceWatchProcedure, svc.Watch, opts...))
	return "/" + SeatingServiceName + "/", mux
}

// UnimplementedSeatingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSeatingServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

func (UnimplementedSeatingServiceHandler) GetSnapshot(context.Context, *connect.Request[seatingv1.GetSnapshotRequest]) (*connect.Response[seatingv1.GetSnapshotResponse], error) {
	return nil, unimplemented(SeatingServiceGetSnapshotProcedure)
}

func (UnimplementedSeatingServiceHandler) Search(context.Context, *connect.Request[seatingv1.SearchRequest]) (*connect.Response[seatingv1.SearchResponse], error) {
	return nil, unimplemented(SeatingServiceSearchProcedure)
}

func (UnimplementedSeatingServiceHandler) AddGuest(context.Context, *connect.Request[seatingv1.AddGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceAddGuestProcedure)
}

func (UnimplementedSeatingServiceHandler) AddPlusOne(context.Context, *connect.Request[seatingv1.AddPlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceAddPlusOneProcedure)
}

func (UnimplementedSeatingServiceHandler) RemovePlusOne(context.Context, *connect.Request[seatingv1.RemovePlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceRemovePlusOneProcedure)
}

func (UnimplementedSeatingServiceHandler) RemoveGuest(context.Context, *connect.Request[seatingv1.RemoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceRemoveGuestProcedure)
}

func (UnimplementedSeatingServiceHandler) RenameGuest(context.Context, *connect.Request[seatingv1.RenameGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceRenameGuestProcedure)
}

func (UnimplementedSeatingServiceHandler) ToggleCheckIn(context.Context, *connect.Request[seatingv1.ToggleCheckInRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceToggleCheckInProcedure)
}

func (UnimplementedSeatingServiceHandler) UpdateCategory(context.Context, *connect.Request[seatingv1.UpdateCategoryRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceUpdateCategoryProcedure)
}

func (UnimplementedSeatingServiceHandler) UpdateNote(context.Context, *connect.Request[seatingv1.UpdateNoteRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceUpdateNoteProcedure)
}

func (UnimplementedSeatingServiceHandler) MoveGuest(context.Context, *connect.Request[seatingv1.MoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return nil, unimplemented(SeatingServiceMoveGuestProcedure)
}

func (UnimplementedSeatingServiceHandler) Watch(context.Context, *connect.Request[seatingv1.WatchRequest], *connect.ServerStream[seatingv1.WatchEvent]) error {
	return unimplemented(SeatingServiceWatchProcedure)
}

// SeatingServiceClient is a client for the seating.v1.SeatingService API.
type SeatingServiceClient interface {
	GetSnapshot(context.Context, *connect.Request[seatingv1.GetSnapshotRequest]) (*connect.Response[seatingv1.GetSnapshotResponse], error)
	Search(context.Context, *connect.Request[seatingv1.SearchRequest]) (*connect.Response[seatingv1.SearchResponse], error)
	AddGuest(context.Context, *connect.Request[seatingv1.AddGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	AddPlusOne(context.Context, *connect.Request[seatingv1.AddPlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RemovePlusOne(context.Context, *connect.Request[seatingv1.RemovePlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RemoveGuest(context.Context, *connect.Request[seatingv1.RemoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	RenameGuest(context.Context, *connect.Request[seatingv1.RenameGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	ToggleCheckIn(context.Context, *connect.Request[seatingv1.ToggleCheckInRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	UpdateCategory(context.Context, *connect.Request[seatingv1.UpdateCategoryRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	UpdateNote(context.Context, *connect.Request[seatingv1.UpdateNoteRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	MoveGuest(context.Context, *connect.Request[seatingv1.MoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error)
	Watch(context.Context, *connect.Request[seatingv1.WatchRequest]) (*connect.ServerStreamForClient[seatingv1.WatchEvent], error)
}

type seatingServiceClient struct {
	getSnapshot    *connect.Client[seatingv1.GetSnapshotRequest, seatingv1.GetSnapshotResponse]
	search         *connect.Client[seatingv1.SearchRequest, seatingv1.SearchResponse]
	addGuest       *connect.Client[seatingv1.AddGuestRequest, seatingv1.MutationResponse]
	addPlusOne     *connect.Client[seatingv1.AddPlusOneRequest, seatingv1.MutationResponse]
	removePlusOne  *connect.Client[seatingv1.RemovePlusOneRequest, seatingv1.MutationResponse]
	removeGuest    *connect.Client[seatingv1.RemoveGuestRequest, seatingv1.MutationResponse]
	renameGuest    *connect.Client[seatingv1.RenameGuestRequest, seatingv1.MutationResponse]
	toggleCheckIn  *connect.Client[seatingv1.ToggleCheckInRequest, seatingv1.MutationResponse]
	updateCategory *connect.Client[seatingv1.UpdateCategoryRequest, seatingv1.MutationResponse]
	updateNote     *connect.Client[seatingv1.UpdateNoteRequest, seatingv1.MutationResponse]
	moveGuest      *connect.Client[seatingv1.MoveGuestRequest, seatingv1.MutationResponse]
	watch          *connect.Client[seatingv1.WatchRequest, seatingv1.WatchEvent]
}

// NewSeatingServiceClient builds a client for the service at baseURL,
// e.g. http://localhost:8080.
func NewSeatingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SeatingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(seatingv1.JSONCodec{})}, opts...)
	return &seatingServiceClient{
		getSnapshot:    connect.NewClient[seatingv1.GetSnapshotRequest, seatingv1.GetSnapshotResponse](httpClient, baseURL+SeatingServiceGetSnapshotProcedure, opts...),
		search:         connect.NewClient[seatingv1.SearchRequest, seatingv1.SearchResponse](httpClient, baseURL+SeatingServiceSearchProcedure, opts...),
		addGuest:       connect.NewClient[seatingv1.AddGuestRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceAddGuestProcedure, opts...),
		addPlusOne:     connect.NewClient[seatingv1.AddPlusOneRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceAddPlusOneProcedure, opts...),
		removePlusOne:  connect.NewClient[seatingv1.RemovePlusOneRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceRemovePlusOneProcedure, opts...),
		removeGuest:    connect.NewClient[seatingv1.RemoveGuestRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceRemoveGuestProcedure, opts...),
		renameGuest:    connect.NewClient[seatingv1.RenameGuestRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceRenameGuestProcedure, opts...),
		toggleCheckIn:  connect.NewClient[seatingv1.ToggleCheckInRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceToggleCheckInProcedure, opts...),
		updateCategory: connect.NewClient[seatingv1.UpdateCategoryRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceUpdateCategoryProcedure, opts...),
		updateNote:     connect.NewClient[seatingv1.UpdateNoteRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceUpdateNoteProcedure, opts...),
		moveGuest:      connect.NewClient[seatingv1.MoveGuestRequest, seatingv1.MutationResponse](httpClient, baseURL+SeatingServiceMoveGuestProcedure, opts...),
		watch:          connect.NewClient[seatingv1.WatchRequest, seatingv1.WatchEvent](httpClient, baseURL+SeatingServiceWatchProcedure, opts...),
	}
}

func (c *seatingServiceClient) GetSnapshot(ctx context.Context, req *connect.Request[seatingv1.GetSnapshotRequest]) (*connect.Response[seatingv1.GetSnapshotResponse], error) {
	return c.getSnapshot.CallUnary(ctx, req)
}

func (c *seatingServiceClient) Search(ctx context.Context, req *connect.Request[seatingv1.SearchRequest]) (*connect.Response[seatingv1.SearchResponse], error) {
	return c.search.CallUnary(ctx, req)
}

func (c *seatingServiceClient) AddGuest(ctx context.Context, req *connect.Request[seatingv1.AddGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.addGuest.CallUnary(ctx, req)
}

func (c *seatingServiceClient) AddPlusOne(ctx context.Context, req *connect.Request[seatingv1.AddPlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.addPlusOne.CallUnary(ctx, req)
}

func (c *seatingServiceClient) RemovePlusOne(ctx context.Context, req *connect.Request[seatingv1.RemovePlusOneRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.removePlusOne.CallUnary(ctx, req)
}

func (c *seatingServiceClient) RemoveGuest(ctx context.Context, req *connect.Request[seatingv1.RemoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.removeGuest.CallUnary(ctx, req)
}

func (c *seatingServiceClient) RenameGuest(ctx context.Context, req *connect.Request[seatingv1.RenameGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.renameGuest.CallUnary(ctx, req)
}

func (c *seatingServiceClient) ToggleCheckIn(ctx context.Context, req *connect.Request[seatingv1.ToggleCheckInRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.toggleCheckIn.CallUnary(ctx, req)
}

func (c *seatingServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[seatingv1.UpdateCategoryRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.updateCategory.CallUnary(ctx, req)
}

func (c *seatingServiceClient) UpdateNote(ctx context.Context, req *connect.Request[seatingv1.UpdateNoteRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.updateNote.CallUnary(ctx, req)
}

func (c *seatingServiceClient) MoveGuest(ctx context.Context, req *connect.Request[seatingv1.MoveGuestRequest]) (*connect.Response[seatingv1.MutationResponse], error) {
	return c.moveGuest.CallUnary(ctx, req)
}

func (c *seatingServiceClient) Watch(ctx context.Context, req *connect.Request[seatingv1.WatchRequest]) (*connect.ServerStreamForClient[seatingv1.WatchEvent], error) {
	return c.watch.CallServerStream(ctx, req)
}
