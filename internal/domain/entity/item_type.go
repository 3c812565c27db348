package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType representa una categoría de artículos del inventario personal.
// MinimumQuantity es el piso de stock deseado; TTL es la vida útil de una
// instancia una vez abierta (nil = no caduca por apertura).
type ItemType struct {
	ID              int64
	Name            string
	MinimumQuantity decimal.Decimal
	TTL             *time.Duration
	OpenedByDefault bool
}

// Matches indica si el nombre del tipo contiene el fragmento dado
// (comparación sin distinguir mayúsculas).
func (t ItemType) Matches(fragment string) bool {
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(fragment))
}
