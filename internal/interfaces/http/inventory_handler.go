package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/AnneKitsune/inventory-managoat/internal/application/dto"
	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
	"github.com/AnneKitsune/inventory-managoat/internal/domain"
	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
)

// InventoryHandler expone el motor de inventario por HTTP. El Store no es
// seguro para uso concurrente, así que todas las operaciones (también las de
// lectura) se serializan con un único mutex de grano grueso: las operaciones
// son baratas, en memoria y sin puntos de suspensión.
type InventoryHandler struct {
	mu    sync.Mutex
	store *inventory.Store
}

// NewInventoryHandler construye el handler sobre un Store ya cargado.
func NewInventoryHandler(store *inventory.Store) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// Snapshot entrega las colecciones actuales para persistirlas al apagar.
func (h *InventoryHandler) Snapshot() ([]entity.ItemType, []entity.ItemInstance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Snapshot()
}

// ─────────────────────────────────────────────────────────────────────────────
// Tipos
// ─────────────────────────────────────────────────────────────────────────────

// ListTypes godoc
// @Summary      Listar tipos de artículo
// @Tags         types
// @Produce      json
// @Param        name  query  string  false  "Filtrar por subcadena del nombre (sin distinguir mayúsculas)"
// @Success      200  {array}  dto.ItemTypeDTO
// @Router       /api/types [get]
func (h *InventoryHandler) ListTypes(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if fragment := c.Query("name"); fragment != "" {
		return c.JSON(dto.FromItemTypes(h.store.TypesByName(fragment)))
	}
	return c.JSON(dto.FromItemTypes(h.store.Types()))
}

// CreateType godoc
// @Summary      Crear un tipo de artículo
// @Tags         types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemTypeRequest  true  "name, minimum_quantity, ttl (segundos), opened_by_default"
// @Success      201  {object}  map[string]int64
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/types [post]
func (h *InventoryHandler) CreateType(c *fiber.Ctx) error {
	var in dto.CreateItemTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	params := inventory.CreateTypeParams{Name: in.Name}
	if in.MinimumQuantity != nil {
		params.MinimumQuantity = *in.MinimumQuantity
	}
	params.TTL = secondsToDuration(in.TTLSeconds)
	if in.OpenedByDefault != nil {
		params.OpenedByDefault = *in.OpenedByDefault
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.store.CreateType(params)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetType godoc
// @Summary      Consultar un tipo por id
// @Tags         types
// @Produce      json
// @Success      200  {object}  dto.ItemTypeDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/types/{id} [get]
func (h *InventoryHandler) GetType(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	t, err := h.store.TypeByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromItemType(t))
}

// UpdateType godoc
// @Summary      Modificar campos de un tipo (patch)
// @Tags         types
// @Accept       json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/types/{id} [patch]
func (h *InventoryHandler) UpdateType(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	var in dto.UpdateItemTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch := inventory.TypePatch{
		Name:            in.Name,
		MinimumQuantity: in.MinimumQuantity,
		TTL:             secondsToDuration(in.TTLSeconds),
		ClearTTL:        in.ClearTTL,
		OpenedByDefault: in.OpenedByDefault,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.UpdateType(id, patch); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteType godoc
// @Summary      Eliminar un tipo y sus instancias en cascada
// @Tags         types
// @Success      204
// @Router       /api/types/{id} [delete]
func (h *InventoryHandler) DeleteType(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	// Idempotente: borrar un id inexistente también responde 204.
	h.store.DeleteType(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// TypeInstances godoc
// @Summary      Instancias activas de un tipo
// @Tags         types
// @Produce      json
// @Success      200  {array}  dto.ItemInstanceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/types/{id}/instances [get]
func (h *InventoryHandler) TypeInstances(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	instances, err := h.store.InstancesForType(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromItemInstances(instances))
}

// TypeQuantity godoc
// @Summary      Cantidad activa total de un tipo
// @Tags         types
// @Produce      json
// @Success      200  {object}  dto.QuantityResponse
// @Router       /api/types/{id}/quantity [get]
func (h *InventoryHandler) TypeQuantity(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(dto.QuantityResponse{ItemType: id, Quantity: h.store.QuantityForType(id)})
}

// UseType godoc
// @Summary      Consumir stock de un tipo
// @Description  Resta la cantidad pedida de las instancias activas del tipo,
//
//	con derrame a la siguiente instancia cuando una se agota.
//
// @Tags         types
// @Accept       json
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/types/{id}/use [post]
func (h *InventoryHandler) UseType(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	var in dto.UseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	qty := decimal.NewFromInt(1)
	if in.Quantity != nil {
		qty = *in.Quantity
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.UseInstance(id, qty); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─────────────────────────────────────────────────────────────────────────────
// Instancias
// ─────────────────────────────────────────────────────────────────────────────

// CreateInstance godoc
// @Summary      Dar de alta una instancia
// @Tags         instances
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemInstanceRequest  true  "item_type, quantity y atributos opcionales"
// @Success      201  {object}  map[string]int64
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/instances [post]
func (h *InventoryHandler) CreateInstance(c *fiber.Ctx) error {
	var in dto.CreateItemInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	params := inventory.CreateInstanceParams{
		ItemType:  in.ItemType,
		Quantity:  in.Quantity,
		Model:     in.Model,
		Serial:    in.Serial,
		Extra:     in.Extra,
		Location:  in.Location,
		Value:     in.Value,
		ExpiresAt: in.ExpiresAt,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id, err := h.store.CreateInstance(params)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateInstance godoc
// @Summary      Modificar campos de una instancia (patch)
// @Tags         instances
// @Accept       json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/instances/{id} [patch]
func (h *InventoryHandler) UpdateInstance(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	var in dto.UpdateItemInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch := inventory.InstancePatch{
		Quantity:       in.Quantity,
		Model:          in.Model,
		Serial:         in.Serial,
		Extra:          in.Extra,
		Location:       in.Location,
		Value:          in.Value,
		ClearValue:     in.ClearValue,
		OpenedAt:       in.OpenedAt,
		ClearOpenedAt:  in.ClearOpenedAt,
		ExpiresAt:      in.ExpiresAt,
		ClearExpiresAt: in.ClearExpiresAt,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.UpdateInstance(id, patch); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TrashInstance godoc
// @Summary      Enviar una instancia a la papelera (borrado blando)
// @Tags         instances
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/instances/{id}/trash [post]
func (h *InventoryHandler) TrashInstance(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Trash(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteInstance godoc
// @Summary      Eliminar una instancia de forma permanente
// @Tags         instances
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/instances/{id} [delete]
func (h *InventoryHandler) DeleteInstance(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return badID(c)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.DeleteInstance(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─────────────────────────────────────────────────────────────────────────────
// Informes
// ─────────────────────────────────────────────────────────────────────────────

// MissingTypes godoc
// @Summary      Tipos con stock por debajo de su mínimo
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ItemTypeDTO
// @Router       /api/reports/missing [get]
func (h *InventoryHandler) MissingTypes(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(dto.FromItemTypes(h.store.MissingTypes()))
}

// ExpiredInstances godoc
// @Summary      Instancias vencidas (incluye las de la papelera)
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ItemInstanceDTO
// @Router       /api/reports/expired [get]
func (h *InventoryHandler) ExpiredInstances(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(dto.FromItemInstances(h.store.ExpiredInstances()))
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func pathID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido, se espera un entero"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// domainError traduce los errores de dominio del motor a códigos HTTP.
func domainError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrUnknownItemType:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ITEM_TYPE", Message: err.Error()})
	case domain.ErrUnknownItemInstance:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_ITEM_INSTANCE", Message: err.Error()})
	case domain.ErrNoMatchingInstance:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_MATCHING_INSTANCE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func secondsToDuration(secs *float64) *time.Duration {
	if secs == nil {
		return nil
	}
	d := time.Duration(*secs * float64(time.Second))
	return &d
}
