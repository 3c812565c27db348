package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
	httpRouter "github.com/AnneKitsune/inventory-managoat/internal/interfaces/http"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expone el inventario por HTTP hasta recibir SIGINT/SIGTERM",
		Long: "Carga el inventario, lo sirve como API REST y, al apagarse de forma " +
			"ordenada, persiste el estado final en el backend configurado.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.cfg.HTTP.Host, "host", a.cfg.HTTP.Host, "dirección de escucha")
	cmd.Flags().IntVarP(&a.cfg.HTTP.Port, "port", "p", a.cfg.HTTP.Port, "puerto de escucha")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	repo, closeRepo, err := a.openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	types, instances, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	store := inventory.NewStoreFromSnapshot(types, instances)
	handler := httpRouter.NewInventoryHandler(store)

	app := fiber.New(fiber.Config{
		AppName:      a.cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": a.cfg.App.Name})
	})

	httpRouter.Router(app, handler)

	a.log.Info().
		Str("addr", a.cfg.HTTP.Addr()).
		Str("backend", a.cfg.Inventory.Backend).
		Msg("iniciando servidor HTTP")

	go func() {
		if err := app.Listen(a.cfg.HTTP.Addr()); err != nil {
			a.log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	a.log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("apagado del servidor")
	}

	// El estado vive en memoria mientras el servidor corre; se persiste una
	// sola vez, al final, igual que los comandos de un solo disparo.
	saveCtx, cancelSave := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSave()
	finalTypes, finalInstances := handler.Snapshot()
	if err := repo.Save(saveCtx, finalTypes, finalInstances); err != nil {
		return err
	}

	a.log.Info().Msg("inventario guardado, aplicación detenida")
	return nil
}
