package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnneKitsune/inventory-managoat/internal/application/dto"
	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
)

// Repository persiste el inventario en dos archivos JSON dentro de un
// directorio de trabajo: {name}_types.json y {name}_instances.json.
// El contrato es de snapshot (ver inventory.Repository): archivo ausente
// equivale a colección vacía; archivo presente pero ilegible es un error.
type Repository struct {
	dir  string
	name string
}

// New construye el repositorio para el directorio e inventario dados.
func New(dir, name string) *Repository {
	return &Repository{dir: dir, name: name}
}

// TypesPath devuelve la ruta del archivo de tipos.
func (r *Repository) TypesPath() string {
	return filepath.Join(r.dir, r.name+"_types.json")
}

// InstancesPath devuelve la ruta del archivo de instancias.
func (r *Repository) InstancesPath() string {
	return filepath.Join(r.dir, r.name+"_instances.json")
}

// Load lee ambas colecciones. Cada archivo ausente se trata como colección
// vacía, de modo que el primer arranque parte de un inventario en blanco.
func (r *Repository) Load(_ context.Context) ([]entity.ItemType, []entity.ItemInstance, error) {
	var typeDTOs []dto.ItemTypeDTO
	if err := readJSON(r.TypesPath(), &typeDTOs); err != nil {
		return nil, nil, fmt.Errorf("leer tipos: %w", err)
	}
	var instanceDTOs []dto.ItemInstanceDTO
	if err := readJSON(r.InstancesPath(), &instanceDTOs); err != nil {
		return nil, nil, fmt.Errorf("leer instancias: %w", err)
	}

	types := make([]entity.ItemType, 0, len(typeDTOs))
	for _, d := range typeDTOs {
		types = append(types, d.ToEntity())
	}
	instances := make([]entity.ItemInstance, 0, len(instanceDTOs))
	for _, d := range instanceDTOs {
		instances = append(instances, d.ToEntity())
	}
	return types, instances, nil
}

// Save escribe ambas colecciones completas, creando el directorio si hace
// falta. Cada archivo se escribe a un temporal y se renombra, para no dejar
// un JSON a medias si el proceso muere escribiendo.
func (r *Repository) Save(_ context.Context, types []entity.ItemType, instances []entity.ItemInstance) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de trabajo: %w", err)
	}
	if err := writeJSON(r.TypesPath(), dto.FromItemTypes(types)); err != nil {
		return fmt.Errorf("guardar tipos: %w", err)
	}
	if err := writeJSON(r.InstancesPath(), dto.FromItemInstances(instances)); err != nil {
		return fmt.Errorf("guardar instancias: %w", err)
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
