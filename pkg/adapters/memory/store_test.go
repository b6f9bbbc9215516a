package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendelian/mendel/pkg/adapters/memory"
	"github.com/mendelian/mendel/pkg/ports"
)

func sampleResult(id string) *ports.RunResult {
	return &ports.RunResult{
		ID:        id,
		Name:      "coin",
		Trials:    1000,
		Labels:    []string{"heads", "tails"},
		Counts:    map[string]uint64{"heads": 498, "tails": 502},
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleResult("run-1")))

	got, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "coin", got.Name)
	assert.Equal(t, uint64(498), got.Counts["heads"])
}

func TestStore_LoadMissing(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrRunNotFound)
}

func TestStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	original := sampleResult("run-1")
	require.NoError(t, store.Save(ctx, original))

	// Mutating the saved value or a loaded copy must not leak into the store.
	original.Counts["heads"] = 0
	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	loaded.Counts["tails"] = 0

	fresh, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(498), fresh.Counts["heads"])
	assert.Equal(t, uint64(502), fresh.Counts["tails"])
}

func TestStore_DeleteAndList(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleResult("run-1")))
	require.NoError(t, store.Save(ctx, sampleResult("run-2")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"run-1", "run-2"}, ids)

	require.NoError(t, store.Delete(ctx, "run-1"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2"}, ids)
}
