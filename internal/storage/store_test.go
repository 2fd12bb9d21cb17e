// File: internal/storage/store_test.go
package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	value, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)

	require.NoError(t, s.Remove(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error.
	require.NoError(t, s.Remove(ctx, "k"))
}

func TestReadJSONAbsentKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var dest map[string]string
	found, err := ReadJSON(ctx, s, "nope", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReadJSONCorruptRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "bad", "{not json"))

	var dest map[string]string
	found, err := ReadJSON(ctx, s, "bad", &dest)
	assert.False(t, found)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestWriteReadJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type record struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}
	in := record{Name: "studio", Count: 3, Tags: []string{"a", "b"}}
	require.NoError(t, WriteJSON(ctx, s, "rec", in))

	var out record
	found, err := ReadJSON(ctx, s, "rec", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client)
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", `{"a":1}`))
	value, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, value)

	require.NoError(t, s.Remove(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	value, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}
