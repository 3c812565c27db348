package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
	"github.com/AnneKitsune/inventory-managoat/internal/infrastructure/jsonfile"
	"github.com/AnneKitsune/inventory-managoat/internal/infrastructure/sqlite"
	"github.com/AnneKitsune/inventory-managoat/pkg/config"
	"github.com/AnneKitsune/inventory-managoat/pkg/logger"
)

// app agrupa la configuración y el logger compartidos por todos los comandos.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

// Execute construye el árbol de comandos y lo ejecuta.
func Execute(ctx context.Context) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "managoat",
		Short:         "Gestor de inventario personal",
		Long:          "Utilidad de línea de comandos para gestionar tu inventario personal: tipos de artículo, instancias físicas, consumo, faltantes y vencimientos.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
		},
	}

	// Los flags persistentes pisan lo leído de env/.env por Viper.
	root.PersistentFlags().StringVarP(&cfg.Inventory.Name, "name", "n", cfg.Inventory.Name,
		"nombre del inventario (prefijo de los archivos de datos)")
	root.PersistentFlags().StringVarP(&cfg.Inventory.Workdir, "workdir", "w", cfg.Inventory.Workdir,
		"directorio donde se cargan y guardan los datos")
	root.PersistentFlags().StringVar(&cfg.Inventory.Backend, "backend", cfg.Inventory.Backend,
		"backend de persistencia: json o sqlite")
	root.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level,
		"nivel de log: trace, debug, info, warn, error")

	root.AddCommand(
		newCreateTypeCmd(a),
		newReadTypesCmd(a),
		newUpdateTypeCmd(a),
		newDeleteTypeCmd(a),
		newCreateInstanceCmd(a),
		newReadInstancesCmd(a),
		newUpdateInstanceCmd(a),
		newDeleteInstanceCmd(a),
		newUseCmd(a),
		newTrashCmd(a),
		newListMissingCmd(a),
		newListExpiredCmd(a),
		newServeCmd(a),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openRepository abre el backend de persistencia configurado.
func (a *app) openRepository() (inventory.Repository, func(), error) {
	switch a.cfg.Inventory.Backend {
	case "json", "":
		return jsonfile.New(a.cfg.Inventory.Workdir, a.cfg.Inventory.Name), func() {}, nil
	case "sqlite":
		if err := os.MkdirAll(a.cfg.Inventory.Workdir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("crear directorio de trabajo: %w", err)
		}
		db, err := sqlite.Open(a.cfg.Inventory.DBPath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewRepository(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("backend desconocido %q (se espera json o sqlite)", a.cfg.Inventory.Backend)
	}
}

// runWithStore carga el inventario, ejecuta la operación y, si mutate es
// cierto, persiste el snapshot resultante. Es el ciclo completo de un comando:
// cargar una vez, una llamada síncrona al motor, guardar una vez.
func (a *app) runWithStore(ctx context.Context, mutate bool, fn func(s *inventory.Store) error) error {
	repo, closeRepo, err := a.openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	types, instances, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar inventario: %w", err)
	}
	store := inventory.NewStoreFromSnapshot(types, instances)

	if err := fn(store); err != nil {
		return err
	}
	if !mutate {
		return nil
	}

	newTypes, newInstances := store.Snapshot()
	if err := repo.Save(ctx, newTypes, newInstances); err != nil {
		return fmt.Errorf("guardar inventario: %w", err)
	}
	a.log.Debug().
		Int("types", len(newTypes)).
		Int("instances", len(newInstances)).
		Str("backend", a.cfg.Inventory.Backend).
		Msg("inventario guardado")
	return nil
}
