package cli

import (
	"github.com/spf13/cobra"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
)

// ──────────────────────────────────────────────
// Reportes derivados
// ──────────────────────────────────────────────

func newListMissingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-missing",
		Short: "Lista los tipos cuyo stock activo está por debajo del mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWithStore(cmd.Context(), false, func(s *inventory.Store) error {
				renderTypes(cmd.OutOrStdout(), s.MissingTypes())
				return nil
			})
		},
	}
}

func newListExpiredCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-expired",
		Short: "Lista las instancias ya vencidas, incluidas las de la papelera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWithStore(cmd.Context(), false, func(s *inventory.Store) error {
				renderInstances(cmd.OutOrStdout(), s.ExpiredInstances(), s)
				return nil
			})
		},
	}
}
