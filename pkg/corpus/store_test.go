package corpus

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedStore(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	samples := []struct {
		generator string
		seed      int64
		value     any
	}{
		{"pick", 1, []string{"B", "D"}},
		{"pick", 2, []string{"A", "E"}},
		{"str.alpha", 1, "hello"},
		{"uuid", 3, "0b8e4c4a-1f5e-4b3c-9d2e-7a6b5c4d3e2f"},
		{"str.num", -5, "123"},
	}
	for _, s := range samples {
		_, err := store.Add(ctx, s.generator, s.seed, s.value)
		require.NoError(t, err)
	}
}

func TestStore_AddAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, err := store.Add(ctx, "pick", 42, []string{"B", "D"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, `["B","D"]`, rec.Value)

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	var decoded []string
	require.NoError(t, got.Decode(&decoded))
	assert.Equal(t, []string{"B", "D"}, decoded)
}

func TestStore_AddSample(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, err := store.AddSample(ctx, Sample{
		Generator: "pick",
		Args:      []string{"2", "A", "B", "C"},
		Seed:      9,
		Index:     3,
		Value:     []string{"A", "C"},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "A", "B", "C"}, got.Args)
	assert.Equal(t, 3, got.Index)
	assert.Equal(t, rec, got)

	_, err = store.AddSample(ctx, Sample{Generator: "uuid", Index: -1, Value: "x"})
	assert.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	var notFound *RecordNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_List(t *testing.T) {
	store := openTestStore(t)
	seedStore(t, store)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "pick", records[0].Generator)
	assert.Equal(t, "uuid", records[3].Generator)
	assert.Equal(t, int64(-5), records[4].Seed)
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, err := store.Add(ctx, "uuid", 1, "x")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rec.ID))

	err = store.Delete(ctx, rec.ID)
	var notFound *RecordNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_AddUnencodable(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Add(context.Background(), "bad", 1, make(chan int))
	assert.Error(t, err)
}

func TestStore_Query(t *testing.T) {
	store := openTestStore(t)
	seedStore(t, store)
	ctx := context.Background()

	tests := []struct {
		name string
		expr string
		want int
	}{
		{"empty matches all", "", 5},
		{"generator", `GeneratorIs("pick")`, 2},
		{"prefix", `GeneratorStartsWith("str")`, 2},
		{"seed", `SeedIs(1)`, 2},
		{"and", `GeneratorIs("pick") && SeedIs(2)`, 1},
		{"or", `GeneratorIs("uuid") || ValueContains("hello")`, 2},
		{"not", `!GeneratorIs("pick")`, 3},
		{"quoted seed", `SeedIs("2")`, 1},
		{"negative seed", `SeedIs("-5")`, 1},
		{"negative seed and generator", `SeedIs("-5") && GeneratorStartsWith("str")`, 1},
		{"value", `ValueContains("\"B\"")`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.Query(ctx, tt.expr)
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestStore_QueryInvalid(t *testing.T) {
	store := openTestStore(t)

	for _, expr := range []string{
		`Unknown("x")`,
		`SeedIs("five")`,
		`SeedIs(1.5)`,
		`SeedIs(-5)`,
	} {
		_, err := store.Query(context.Background(), expr)
		assert.Error(t, err, expr)
	}
}

func TestStore_LogsWrites(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	store := openTestStore(t, WithLogger(zap.New(core)))

	_, err := store.Add(context.Background(), "pick", 7, []int{1})
	require.NoError(t, err)

	entries := logs.FilterMessage("recorded sample").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "pick", entries[0].ContextMap()["generator"])
}
