package http

import (
	"github.com/gofiber/fiber/v2"
)

// Router registra las rutas de la API sobre el handler de inventario.
func Router(app *fiber.App, h *InventoryHandler) {
	api := app.Group("/api")

	types := api.Group("/types")
	types.Get("/", h.ListTypes)
	types.Post("/", h.CreateType)
	types.Get("/:id", h.GetType)
	types.Patch("/:id", h.UpdateType)
	types.Delete("/:id", h.DeleteType)
	types.Get("/:id/instances", h.TypeInstances)
	types.Get("/:id/quantity", h.TypeQuantity)
	types.Post("/:id/use", h.UseType)

	instances := api.Group("/instances")
	instances.Post("/", h.CreateInstance)
	instances.Patch("/:id", h.UpdateInstance)
	instances.Delete("/:id", h.DeleteInstance)
	instances.Post("/:id/trash", h.TrashInstance)

	reports := api.Group("/reports")
	reports.Get("/missing", h.MissingTypes)
	reports.Get("/expired", h.ExpiredInstances)
}
