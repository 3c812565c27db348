package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Representación serializable (persistencia JSON y respuestas HTTP)
// ─────────────────────────────────────────────────────────────────────────────

// ItemTypeDTO forma serializable de un tipo. El TTL viaja como segundos
// (fraccionarios permitidos); los campos opcionales se omiten cuando no hay
// valor, para que "ausente" y "sin valor" sean lo mismo al leer y escribir.
type ItemTypeDTO struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	TTLSeconds      *float64        `json:"ttl,omitempty"`
	OpenedByDefault bool            `json:"opened_by_default"`
}

// ItemInstanceDTO forma serializable de una instancia. Timestamps en RFC 3339.
type ItemInstanceDTO struct {
	ID        int64            `json:"id"`
	ItemType  int64            `json:"item_type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Model     *string          `json:"model,omitempty"`
	Serial    *string          `json:"serial,omitempty"`
	Extra     *string          `json:"extra,omitempty"`
	Location  *string          `json:"location,omitempty"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	OpenedAt  *time.Time       `json:"opened_at,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
	RemovedAt *time.Time       `json:"removed_at,omitempty"`
}

// FromItemType convierte la entidad a su forma serializable.
func FromItemType(t entity.ItemType) ItemTypeDTO {
	d := ItemTypeDTO{
		ID:              t.ID,
		Name:            t.Name,
		MinimumQuantity: t.MinimumQuantity,
		OpenedByDefault: t.OpenedByDefault,
	}
	if t.TTL != nil {
		secs := t.TTL.Seconds()
		d.TTLSeconds = &secs
	}
	return d
}

// ToEntity reconstruye la entidad desde la forma serializable.
func (d ItemTypeDTO) ToEntity() entity.ItemType {
	t := entity.ItemType{
		ID:              d.ID,
		Name:            d.Name,
		MinimumQuantity: d.MinimumQuantity,
		OpenedByDefault: d.OpenedByDefault,
	}
	if d.TTLSeconds != nil {
		ttl := time.Duration(*d.TTLSeconds * float64(time.Second))
		t.TTL = &ttl
	}
	return t
}

// FromItemInstance convierte la entidad a su forma serializable.
func FromItemInstance(i entity.ItemInstance) ItemInstanceDTO {
	return ItemInstanceDTO{
		ID:        i.ID,
		ItemType:  i.ItemType,
		Quantity:  i.Quantity,
		Model:     i.Model,
		Serial:    i.Serial,
		Extra:     i.Extra,
		Location:  i.Location,
		Value:     i.Value,
		OpenedAt:  i.OpenedAt,
		ExpiresAt: i.ExpiresAt,
		AddedAt:   i.AddedAt,
		RemovedAt: i.RemovedAt,
	}
}

// ToEntity reconstruye la entidad desde la forma serializable.
func (d ItemInstanceDTO) ToEntity() entity.ItemInstance {
	return entity.ItemInstance{
		ID:        d.ID,
		ItemType:  d.ItemType,
		Quantity:  d.Quantity,
		Model:     d.Model,
		Serial:    d.Serial,
		Extra:     d.Extra,
		Location:  d.Location,
		Value:     d.Value,
		OpenedAt:  d.OpenedAt,
		ExpiresAt: d.ExpiresAt,
		AddedAt:   d.AddedAt,
		RemovedAt: d.RemovedAt,
	}
}

// FromItemTypes convierte un listado completo conservando el orden.
func FromItemTypes(types []entity.ItemType) []ItemTypeDTO {
	out := make([]ItemTypeDTO, 0, len(types))
	for _, t := range types {
		out = append(out, FromItemType(t))
	}
	return out
}

// FromItemInstances convierte un listado completo conservando el orden.
func FromItemInstances(instances []entity.ItemInstance) []ItemInstanceDTO {
	out := make([]ItemInstanceDTO, 0, len(instances))
	for _, i := range instances {
		out = append(out, FromItemInstance(i))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Requests HTTP
// ─────────────────────────────────────────────────────────────────────────────

// CreateItemTypeRequest body para POST /api/types.
type CreateItemTypeRequest struct {
	Name            string           `json:"name"`
	MinimumQuantity *decimal.Decimal `json:"minimum_quantity,omitempty"`
	TTLSeconds      *float64         `json:"ttl,omitempty"`
	OpenedByDefault *bool            `json:"opened_by_default,omitempty"`
}

// UpdateItemTypeRequest body para PATCH /api/types/:id (patch: nil = sin cambio).
type UpdateItemTypeRequest struct {
	Name            *string          `json:"name,omitempty"`
	MinimumQuantity *decimal.Decimal `json:"minimum_quantity,omitempty"`
	TTLSeconds      *float64         `json:"ttl,omitempty"`
	ClearTTL        bool             `json:"clear_ttl,omitempty"`
	OpenedByDefault *bool            `json:"opened_by_default,omitempty"`
}

// CreateItemInstanceRequest body para POST /api/instances.
type CreateItemInstanceRequest struct {
	ItemType  int64            `json:"item_type"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Model     *string          `json:"model,omitempty"`
	Serial    *string          `json:"serial,omitempty"`
	Extra     *string          `json:"extra,omitempty"`
	Location  *string          `json:"location,omitempty"`
	Value     *decimal.Decimal `json:"value,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}

// UpdateItemInstanceRequest body para PATCH /api/instances/:id.
type UpdateItemInstanceRequest struct {
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	Model          *string          `json:"model,omitempty"`
	Serial         *string          `json:"serial,omitempty"`
	Extra          *string          `json:"extra,omitempty"`
	Location       *string          `json:"location,omitempty"`
	Value          *decimal.Decimal `json:"value,omitempty"`
	ClearValue     bool             `json:"clear_value,omitempty"`
	OpenedAt       *time.Time       `json:"opened_at,omitempty"`
	ClearOpenedAt  bool             `json:"clear_opened_at,omitempty"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
	ClearExpiresAt bool             `json:"clear_expires_at,omitempty"`
}

// UseRequest body para POST /api/types/:id/use. Quantity nil equivale a 1.
type UseRequest struct {
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
}

// QuantityResponse salida de GET /api/types/:id/quantity.
type QuantityResponse struct {
	ItemType int64           `json:"item_type"`
	Quantity decimal.Decimal `json:"quantity"`
}
