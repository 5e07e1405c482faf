package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colorstock/internal/domain/entity"
	"github.com/jhoicas/colorstock/internal/infrastructure/memory"
)

func TestSnapshotStore_CopiaProfunda(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore(nil)

	snap := &entity.Snapshot{Products: []*entity.Product{{
		Kind: entity.KindColorant, Reference: "C1", Name: "Rojo",
		StockInitial: decimal.NewFromInt(10),
	}}}
	require.NoError(t, store.Save(ctx, snap))

	snap.Products[0].Name = "modificado"

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Rojo", got.Products[0].Name)
	assert.Equal(t, 1, store.Saves())
}

func TestSnapshotStore_FallaForzada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore(nil)
	store.FailSaves(true)

	err := store.Save(ctx, &entity.Snapshot{})
	assert.ErrorIs(t, err, memory.ErrSaveFailed)
	assert.Equal(t, 0, store.Saves())

	store.FailSaves(false)
	assert.NoError(t, store.Save(ctx, &entity.Snapshot{}))
}

func TestSnapshotStore_VacioAlInicio(t *testing.T) {
	got, err := memory.NewSnapshotStore(nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Products)
	assert.Empty(t, got.Consumption)
	assert.Empty(t, got.Orders)
}
