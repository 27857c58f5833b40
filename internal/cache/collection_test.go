package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64
	Label string
}

func (i item) Key() int64 {
	return i.ID
}

type countingLoader struct {
	calls atomic.Int32
	rows  []item
	err   error
}

func (l *countingLoader) load(_ context.Context) ([]item, error) {
	l.calls.Add(1)

	return l.rows, l.err
}

func TestCollection_LazyLoadOnce(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 3, Label: "c"}, {ID: 1, Label: "a"}, {ID: 2, Label: "b"}}}
	col := cache.NewCollection("item", loader.load)

	assert.False(t, col.Loaded())
	assert.Equal(t, int32(0), loader.calls.Load())

	all, err := col.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}, {ID: 3, Label: "c"}}, all)

	got, found, err := col.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", got.Label)

	_, found, err = col.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestCollection_LoadError(t *testing.T) {
	loader := &countingLoader{err: errors.New("store down")}
	col := cache.NewCollection("item", loader.load)

	_, err := col.GetAll(context.Background())
	assert.Error(t, err)
	assert.False(t, col.Loaded())

	loader.err = nil
	loader.rows = []item{{ID: 1}}

	all, err := col.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCollection_MutationsAfterLoad(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1, Label: "a"}}}
	col := cache.NewCollection("item", loader.load)

	_, err := col.GetAll(context.Background())
	require.NoError(t, err)

	col.Add(item{ID: 2, Label: "b"})
	col.Update(item{ID: 1, Label: "a2"})
	col.Delete(3)

	all, err := col.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Label: "a2"}, {ID: 2, Label: "b"}}, all)

	col.Delete(1)

	all, err = col.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 2, Label: "b"}}, all)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestCollection_MutationBeforeLoadIsLeftToTheStore(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1, Label: "from store"}}}
	col := cache.NewCollection("item", loader.load)

	col.Add(item{ID: 1, Label: "stale"})
	assert.False(t, col.Loaded())

	got, found, err := col.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "from store", got.Label)
}

func TestCollection_AddIfAbsentKeepsMirroredMutation(t *testing.T) {
	loader := &countingLoader{rows: []item{}}
	col := cache.NewCollection("item", loader.load)

	_, _, err := col.GetByID(context.Background(), 5)
	require.NoError(t, err)

	// a committed update is mirrored while a fallback read of the older row is in flight
	col.Update(item{ID: 5, Label: "cancelled"})
	assert.False(t, col.AddIfAbsent(item{ID: 5, Label: "live"}))

	got, found, err := col.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "cancelled", got.Label)

	assert.True(t, col.AddIfAbsent(item{ID: 6, Label: "fresh"}))

	got, found, err = col.GetByID(context.Background(), 6)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fresh", got.Label)
}

func TestCollection_AddIfAbsentBeforeLoad(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1, Label: "from store"}}}
	col := cache.NewCollection("item", loader.load)

	assert.False(t, col.AddIfAbsent(item{ID: 1, Label: "stale"}))
	assert.False(t, col.Loaded())
}

func TestCollection_Reload(t *testing.T) {
	t.Run("mutation racing a reload lands on top", func(t *testing.T) {
		loader := &countingLoader{rows: []item{{ID: 1, Label: "v1"}}}
		col := cache.NewCollection("item", loader.load)

		_, err := col.GetAll(context.Background())
		require.NoError(t, err)

		done := make(chan struct{})

		err = col.Reload(context.Background(), 1, func(context.Context) (item, bool, error) {
			go func() {
				defer close(done)
				col.Update(item{ID: 1, Label: "v3"})
			}()

			return item{ID: 1, Label: "v2"}, true, nil
		})
		require.NoError(t, err)

		<-done

		got, _, err := col.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "v3", got.Label)
	})

	t.Run("missing row is dropped", func(t *testing.T) {
		loader := &countingLoader{rows: []item{{ID: 1, Label: "v1"}}}
		col := cache.NewCollection("item", loader.load)

		_, err := col.GetAll(context.Background())
		require.NoError(t, err)

		require.NoError(t, col.Reload(context.Background(), 1, func(context.Context) (item, bool, error) {
			return item{}, false, nil
		}))

		_, found, err := col.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("unloaded collection skips the fetch", func(t *testing.T) {
		col := cache.NewCollection("item", (&countingLoader{}).load)

		require.NoError(t, col.Reload(context.Background(), 1, func(context.Context) (item, bool, error) {
			t.Fatal("fetch must not run before the first load")

			return item{}, false, nil
		}))
	})

	t.Run("fetch error", func(t *testing.T) {
		loader := &countingLoader{rows: []item{{ID: 1, Label: "v1"}}}
		col := cache.NewCollection("item", loader.load)

		_, err := col.GetAll(context.Background())
		require.NoError(t, err)

		err = col.Reload(context.Background(), 1, func(context.Context) (item, bool, error) {
			return item{}, false, errors.New("connection reset")
		})
		require.Error(t, err)

		got, _, err := col.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "v1", got.Label)
	})
}

func TestCollection_SnapshotsAreIndependent(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1, Label: "a"}}}
	col := cache.NewCollection("item", loader.load)

	all, err := col.GetAll(context.Background())
	require.NoError(t, err)

	all[0].Label = "changed by caller"

	got, _, err := col.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Label)
}

func TestCollection_Invalidate(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1}}}
	col := cache.NewCollection("item", loader.load)

	_, err := col.GetAll(context.Background())
	require.NoError(t, err)

	col.Invalidate()
	assert.False(t, col.Loaded())

	_, err = col.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCollection_ConcurrentAccess(t *testing.T) {
	loader := &countingLoader{rows: []item{{ID: 1}}}
	col := cache.NewCollection("item", loader.load)

	const workers = 20

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(2)

		go func(id int64) {
			defer wg.Done()

			_, err := col.GetAll(context.Background())
			assert.NoError(t, err)
		}(int64(i))

		go func(id int64) {
			defer wg.Done()

			col.Add(item{ID: id + 100})
		}(int64(i))
	}

	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())

	all, err := col.GetAll(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(all), workers+1)
	assert.Equal(t, int64(1), all[0].ID)
}
