package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemInstance representa una unidad o lote físico de un ItemType.
// ItemType es una referencia por id (clave foránea), nunca un puntero al tipo:
// los tipos pueden borrarse y sus instancias se eliminan en cascada.
type ItemInstance struct {
	ID        int64
	ItemType  int64
	Quantity  decimal.Decimal
	Model     *string
	Serial    *string
	Extra     *string
	Location  *string
	Value     *decimal.Decimal
	OpenedAt  *time.Time
	ExpiresAt *time.Time
	AddedAt   time.Time
	RemovedAt *time.Time
}

// Active indica si la instancia sigue viva (no enviada a la papelera).
func (i ItemInstance) Active() bool {
	return i.RemovedAt == nil
}

// Opened indica si la instancia ya fue abierta (comenzó a consumirse).
func (i ItemInstance) Opened() bool {
	return i.OpenedAt != nil
}

// ExpiredAt indica si la instancia está vencida en el instante dado.
// Una instancia sin fecha de expiración nunca vence.
func (i ItemInstance) ExpiredAt(now time.Time) bool {
	return i.ExpiresAt != nil && !i.ExpiresAt.After(now)
}
