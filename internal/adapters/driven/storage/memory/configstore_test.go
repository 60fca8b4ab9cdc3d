package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreWith(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"ingest.similarity":     "fold",
		"ingest.edit_threshold": 3,
	})
	assert.Equal(t, "fold", store.GetString("ingest.similarity"))
	assert.Equal(t, 3, store.GetInt("ingest.edit_threshold"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("search.limit", 10))

	val, ok := store.Get("search.limit")
	assert.True(t, ok)
	assert.Equal(t, 10, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"key": 42})
	assert.Equal(t, "", store.GetString("key"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt_Conversions(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"int":    7,
		"int64":  int64(8),
		"float":  float64(9),
		"string": "10",
	})
	assert.Equal(t, 7, store.GetInt("int"))
	assert.Equal(t, 8, store.GetInt("int64"))
	assert.Equal(t, 9, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("string"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"notes.dirs": []any{"/a", 3, "/b"},
		"typed":      []string{"x"},
		"scalar":     "x",
	})
	assert.Equal(t, []string{"/a", "/b"}, store.GetStringSlice("notes.dirs"))
	assert.Equal(t, []string{"x"}, store.GetStringSlice("typed"))
	assert.Nil(t, store.GetStringSlice("scalar"))
}

func TestConfigStore_Save_NoOp(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{"k": "v"})
	assert.NoError(t, store.Save())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Snapshot_IsCopy(t *testing.T) {
	seed := map[string]any{"k": "v"}
	store := NewConfigStoreWith(seed)
	seed["k"] = "changed"

	snap := store.Snapshot()
	snap["k"] = "mutated"

	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.limit", n)
			_ = store.GetInt("search.limit")
		}(i)
	}
	wg.Wait()
	_, ok := store.Get("search.limit")
	assert.True(t, ok)
}
