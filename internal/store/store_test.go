package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kvImplementations(t *testing.T) map[string]KV {
	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })
	return map[string]KV{
		"bolt":   bolt,
		"memory": NewMemory(),
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(BucketCart, KeyCart)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Put(BucketCart, KeyCart, []byte(`[{"id":1}]`)))
			value, found, err := kv.Get(BucketCart, KeyCart)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"id":1}]`, string(value))

			require.NoError(t, kv.Delete(BucketCart, KeyCart))
			_, found, err = kv.Get(BucketCart, KeyCart)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestKVDeleteMissingIsNoop(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, kv.Delete("nothing", "here"))
		})
	}
}

func TestKVForEach(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Put(BucketCheckouts, "a", []byte("1")))
			require.NoError(t, kv.Put(BucketCheckouts, "b", []byte("2")))

			seen := map[string]string{}
			require.NoError(t, kv.ForEach(BucketCheckouts, func(key string, value []byte) error {
				seen[key] = string(value)
				return nil
			}))
			assert.Equal(t, map[string]string{"a": "1", "b": "2"}, seen)

			// missing bucket visits nothing
			assert.NoError(t, kv.ForEach("empty", func(string, []byte) error {
				t.Fatal("should not be called")
				return nil
			}))
		})
	}
}

func TestBoltValueIsolation(t *testing.T) {
	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer bolt.Close()

	require.NoError(t, bolt.Put(BucketCart, KeyCart, []byte("abc")))
	v1, _, err := bolt.Get(BucketCart, KeyCart)
	require.NoError(t, err)
	v1[0] = 'x' // mutating a returned value must not touch the store

	v2, _, err := bolt.Get(BucketCart, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v2))
}
