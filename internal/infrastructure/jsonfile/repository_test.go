package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
	"github.com/AnneKitsune/inventory-managoat/internal/infrastructure/jsonfile"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestLoad_ArchivosAusentesEsInventarioVacio(t *testing.T) {
	repo := jsonfile.New(t.TempDir(), "default")

	types, instances, err := repo.Load(context.Background())
	require.NoError(t, err, "el primer arranque no debe fallar por archivos ausentes")
	assert.Empty(t, types)
	assert.Empty(t, instances)
}

func TestLoad_ArchivoCorruptoEsError(t *testing.T) {
	dir := t.TempDir()
	repo := jsonfile.New(dir, "default")
	require.NoError(t, os.WriteFile(repo.TypesPath(), []byte("{no es json"), 0o644))

	_, _, err := repo.Load(context.Background())
	assert.Error(t, err, "un archivo presente pero ilegible es fatal, no un inventario vacío")
}

func TestSaveLoad_RoundTripConOpcionales(t *testing.T) {
	repo := jsonfile.New(t.TempDir(), "casa")
	ctx := context.Background()

	ttl := 36*time.Hour + 30*time.Minute
	model := "integral"
	value := decimal.RequireFromString("3.20")
	opened := testTime.Add(time.Hour)
	removed := testTime.Add(2 * time.Hour)

	types := []entity.ItemType{
		{ID: 1, Name: "pan", MinimumQuantity: decimal.RequireFromString("1.5"), TTL: &ttl, OpenedByDefault: true},
		{ID: 2, Name: "sal", MinimumQuantity: decimal.Zero},
	}
	instances := []entity.ItemInstance{
		{ID: 1, ItemType: 1, Quantity: decimal.RequireFromString("0.5"), Model: &model,
			Value: &value, OpenedAt: &opened, AddedAt: testTime},
		{ID: 2, ItemType: 2, Quantity: decimal.NewFromInt(1), AddedAt: testTime, RemovedAt: &removed},
	}

	require.NoError(t, repo.Save(ctx, types, instances))

	gotTypes, gotInstances, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, gotTypes, 2)
	assert.Equal(t, "pan", gotTypes[0].Name)
	assert.True(t, gotTypes[0].MinimumQuantity.Equal(decimal.RequireFromString("1.5")))
	require.NotNil(t, gotTypes[0].TTL)
	assert.Equal(t, ttl, *gotTypes[0].TTL)
	assert.True(t, gotTypes[0].OpenedByDefault)
	assert.Nil(t, gotTypes[1].TTL, "un TTL ausente debe volver como ausente, no como cero")

	require.Len(t, gotInstances, 2)
	first := gotInstances[0]
	require.NotNil(t, first.Model)
	assert.Equal(t, "integral", *first.Model)
	require.NotNil(t, first.Value)
	assert.True(t, first.Value.Equal(value))
	require.NotNil(t, first.OpenedAt)
	assert.True(t, first.OpenedAt.Equal(opened))
	assert.Nil(t, first.RemovedAt)
	assert.True(t, first.AddedAt.Equal(testTime))

	second := gotInstances[1]
	assert.Nil(t, second.Model)
	assert.Nil(t, second.OpenedAt)
	require.NotNil(t, second.RemovedAt)
	assert.True(t, second.RemovedAt.Equal(removed))
}

// El TTL viaja como número de segundos y los opcionales ausentes no aparecen
// como claves en el JSON (contrato del formato en disco).
func TestSave_FormatoEnDisco(t *testing.T) {
	repo := jsonfile.New(t.TempDir(), "default")
	ttl := 90 * time.Second

	types := []entity.ItemType{
		{ID: 1, Name: "yogur", MinimumQuantity: decimal.Zero, TTL: &ttl},
	}
	instances := []entity.ItemInstance{
		{ID: 1, ItemType: 1, Quantity: decimal.NewFromInt(2), AddedAt: testTime},
	}
	require.NoError(t, repo.Save(context.Background(), types, instances))

	raw, err := os.ReadFile(repo.TypesPath())
	require.NoError(t, err)
	var typeMaps []map[string]any
	require.NoError(t, json.Unmarshal(raw, &typeMaps))
	require.Len(t, typeMaps, 1)
	assert.InDelta(t, 90.0, typeMaps[0]["ttl"], 0.0001, "el ttl se serializa como segundos numéricos")

	raw, err = os.ReadFile(repo.InstancesPath())
	require.NoError(t, err)
	var instMaps []map[string]any
	require.NoError(t, json.Unmarshal(raw, &instMaps))
	require.Len(t, instMaps, 1)
	for _, key := range []string{"model", "serial", "extra", "location", "value", "opened_at", "expires_at", "removed_at"} {
		_, present := instMaps[0][key]
		assert.False(t, present, "el campo opcional %q no debe aparecer cuando no hay valor", key)
	}
	assert.Contains(t, instMaps[0], "added_at")
}
