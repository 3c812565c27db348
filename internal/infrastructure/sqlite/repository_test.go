package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
	"github.com/AnneKitsune/inventory-managoat/internal/infrastructure/sqlite"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "inventario.db"))
	require.NoError(t, err, "abrir y migrar la base de prueba no debe fallar")
	t.Cleanup(func() { db.Close() })
	return sqlite.NewRepository(db)
}

func TestLoad_BaseReciénMigradaEstaVacia(t *testing.T) {
	repo := setupRepo(t)

	types, instances, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, types)
	assert.Empty(t, instances)
}

func TestSaveLoad_RoundTripConOpcionales(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	ttl := 90 * time.Minute
	serial := "A-113"
	value := decimal.RequireFromString("49.90")
	opened := testTime.Add(30 * time.Minute)
	removed := testTime.Add(time.Hour)

	types := []entity.ItemType{
		{ID: 1, Name: "aceite", MinimumQuantity: decimal.RequireFromString("0.5"), TTL: &ttl},
		{ID: 2, Name: "taladro", MinimumQuantity: decimal.Zero, OpenedByDefault: true},
	}
	instances := []entity.ItemInstance{
		{ID: 1, ItemType: 2, Quantity: decimal.NewFromInt(1), Serial: &serial,
			Value: &value, OpenedAt: &opened, AddedAt: testTime},
		{ID: 2, ItemType: 1, Quantity: decimal.RequireFromString("0.75"),
			AddedAt: testTime, RemovedAt: &removed},
	}
	require.NoError(t, repo.Save(ctx, types, instances))

	gotTypes, gotInstances, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, gotTypes, 2)
	require.NotNil(t, gotTypes[0].TTL)
	assert.Equal(t, ttl, *gotTypes[0].TTL)
	assert.Nil(t, gotTypes[1].TTL)
	assert.True(t, gotTypes[1].OpenedByDefault)
	assert.True(t, gotTypes[0].MinimumQuantity.Equal(decimal.RequireFromString("0.5")),
		"los decimales no deben perder precisión en el viaje por TEXT")

	require.Len(t, gotInstances, 2)
	first := gotInstances[0]
	require.NotNil(t, first.Serial)
	assert.Equal(t, serial, *first.Serial)
	require.NotNil(t, first.Value)
	assert.True(t, first.Value.Equal(value))
	require.NotNil(t, first.OpenedAt)
	assert.True(t, first.OpenedAt.Equal(opened))
	assert.Nil(t, first.RemovedAt)

	second := gotInstances[1]
	assert.Nil(t, second.Serial)
	require.NotNil(t, second.RemovedAt)
	assert.True(t, second.RemovedAt.Equal(removed))
	assert.True(t, second.Quantity.Equal(decimal.RequireFromString("0.75")))
}

// El orden de colección sobrevive aunque los ids no sean crecientes: tras
// borrar el id más alto el motor lo reutiliza, y la fila nueva debe volver al
// final, no ordenada por id.
func TestSaveLoad_ConservaOrdenDeColeccion(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	types := []entity.ItemType{
		{ID: 3, Name: "tercero", MinimumQuantity: decimal.Zero},
		{ID: 1, Name: "primero", MinimumQuantity: decimal.Zero},
		{ID: 2, Name: "segundo", MinimumQuantity: decimal.Zero},
	}
	require.NoError(t, repo.Save(ctx, types, nil))

	gotTypes, _, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, gotTypes, 3)
	assert.Equal(t, []string{"tercero", "primero", "segundo"},
		[]string{gotTypes[0].Name, gotTypes[1].Name, gotTypes[2].Name})
}

// Save es de snapshot: una segunda escritura reemplaza todo lo anterior.
func TestSave_ReemplazaElContenidoAnterior(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx,
		[]entity.ItemType{{ID: 1, Name: "viejo", MinimumQuantity: decimal.Zero}},
		[]entity.ItemInstance{{ID: 1, ItemType: 1, Quantity: decimal.NewFromInt(1), AddedAt: testTime}},
	))
	require.NoError(t, repo.Save(ctx,
		[]entity.ItemType{{ID: 1, Name: "nuevo", MinimumQuantity: decimal.Zero}},
		nil,
	))

	gotTypes, gotInstances, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, gotTypes, 1)
	assert.Equal(t, "nuevo", gotTypes[0].Name)
	assert.Empty(t, gotInstances)
}
