package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/storage"
)

func snapshotWith(tableID string) models.Snapshot {
	return models.Snapshot{Tables: []models.Table{{ID: tableID, Guests: []models.Guest{}}}}
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "k", snapshotWith("1")))
	got, ok, err := s.Load(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", got.Tables[0].ID)
	assert.Equal(t, 1, s.Saves())

	s.PutRaw("k", []byte("garbage"))
	_, ok, err = s.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	boom := errors.New("disk full")
	s.FailSaves(boom)
	assert.ErrorIs(t, s.Save(ctx, "k", snapshotWith("2")), boom)

	s.FailSaves(nil)
	require.NoError(t, s.Save(ctx, "k", snapshotWith("3")))
	s.FailLoads(boom)
	_, _, err = s.Load(ctx, "k")
	assert.ErrorIs(t, err, boom)
	got, ok = s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "3", got.Tables[0].ID)
}

func TestWatch(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	pushes := make(chan storage.Push, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "k", func(p storage.Push) { pushes <- p })
	}()

	first := receive(t, pushes)
	assert.False(t, first.Exists)

	require.NoError(t, s.Put("k", snapshotWith("7")))
	second := receive(t, pushes)
	require.True(t, second.Exists)
	assert.Equal(t, "7", second.Snapshot.Tables[0].ID)

	require.NoError(t, s.Put("other", snapshotWith("8")))
	select {
	case p := <-pushes:
		t.Fatalf("unexpected push for another key: %+v", p)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_Failure(t *testing.T) {
	s := New()
	pushes := make(chan storage.Push, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(context.Background(), "k", func(p storage.Push) { pushes <- p })
	}()
	receive(t, pushes)

	denied := errors.New("permission denied")
	s.FailWatch(denied)
	assert.ErrorIs(t, <-done, denied)

	err := s.Watch(context.Background(), "k", func(storage.Push) {})
	assert.ErrorIs(t, err, denied)
}

func receive(t *testing.T, ch <-chan storage.Push) storage.Push {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for push")
		return storage.Push{}
	}
}
