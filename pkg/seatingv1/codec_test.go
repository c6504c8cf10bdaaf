package seatingv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&AddGuestRequest{TableId: "5", Name: "Wang"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tableId":"5","name":"Wang"}`, string(data))

	var req AddGuestRequest
	require.NoError(t, codec.Unmarshal(data, &req))
	assert.Equal(t, AddGuestRequest{TableId: "5", Name: "Wang"}, req)
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req SearchRequest
	require.NoError(t, JSONCodec{}.Unmarshal(nil, &req))
	assert.Equal(t, SearchRequest{}, req)
}

func TestJSONCodec_Malformed(t *testing.T) {
	var req SearchRequest
	assert.Error(t, JSONCodec{}.Unmarshal([]byte(`{"query":`), &req))
}

func TestWatchEventOmitsEmptyFields(t *testing.T) {
	data, err := JSONCodec{}.Marshal(&WatchEvent{Alert: "Save failed", Mode: ModeRemote})
	require.NoError(t, err)
	assert.JSONEq(t, `{"alert":"Save failed","mode":"remote"}`, string(data))
}
