package inventory

import (
	"context"

	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
)

// Repository es el puerto de persistencia del inventario (colaborador de E/S).
// El contrato es de snapshot: Load lee ambas colecciones completas al arrancar
// y Save las escribe completas al terminar la secuencia de operaciones.
// Un archivo/tabla inexistente equivale a colección vacía; contenido presente
// pero ilegible es un error (fatal para el caller).
type Repository interface {
	Load(ctx context.Context) (types []entity.ItemType, instances []entity.ItemInstance, err error)
	Save(ctx context.Context, types []entity.ItemType, instances []entity.ItemInstance) error
}
