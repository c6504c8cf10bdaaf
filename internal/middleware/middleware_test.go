package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	pb "github.com/mmynk/seatsync/pkg/seatingv1"
	"github.com/mmynk/seatsync/pkg/seatingv1/seatingv1connect"
)

// searchOnly answers Search and rejects everything else.
type searchOnly struct {
	seatingv1connect.UnimplementedSeatingServiceHandler
}

func (searchOnly) Search(ctx context.Context, req *connect.Request[pb.SearchRequest]) (*connect.Response[pb.SearchResponse], error) {
	if req.Msg.Query == "fail" {
		return nil, errors.New("boom")
	}
	return connect.NewResponse(&pb.SearchResponse{Started: true}), nil
}

func setup(t *testing.T, interceptors ...connect.Interceptor) seatingv1connect.SeatingServiceClient {
	t.Helper()
	path, handler := seatingv1connect.NewSeatingServiceHandler(searchOnly{}, connect.WithInterceptors(interceptors...))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return seatingv1connect.NewSeatingServiceClient(http.DefaultClient, server.URL)
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client := setup(t, LoggingInterceptor(logger))
	ctx := context.Background()

	if _, err := client.Search(ctx, connect.NewRequest(&pb.SearchRequest{Query: "li"})); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, err := client.GetSnapshot(ctx, connect.NewRequest(&pb.GetSnapshotRequest{})); connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Fatalf("expected unimplemented, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "RPC ok") || !strings.Contains(out, seatingv1connect.SeatingServiceSearchProcedure) {
		t.Errorf("missing success line in log:\n%s", out)
	}
	if !strings.Contains(out, "RPC error") || !strings.Contains(out, "code=unimplemented") {
		t.Errorf("missing error line in log:\n%s", out)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	metrics := NewMetricsInterceptor(nil)
	client := setup(t, metrics)
	ctx := context.Background()

	if _, err := client.Search(ctx, connect.NewRequest(&pb.SearchRequest{Query: "li"})); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, err := client.Search(ctx, connect.NewRequest(&pb.SearchRequest{Query: "fail"})); err == nil {
		t.Fatal("expected error")
	}

	procedure := seatingv1connect.SeatingServiceSearchProcedure
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(procedure, "ok")); got != 1 {
		t.Errorf("ok count: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(procedure, "unknown")); got != 1 {
		t.Errorf("unknown count: expected 1, got %v", got)
	}
}
