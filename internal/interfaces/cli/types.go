package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
)

// ──────────────────────────────────────────────
// Comandos de tipos de artículo
// ──────────────────────────────────────────────

func newCreateTypeCmd(a *app) *cobra.Command {
	var (
		minimum         string
		ttl             string
		openedByDefault bool
	)
	cmd := &cobra.Command{
		Use:   "ct <nombre>",
		Short: "Crea un tipo de artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := inventory.CreateTypeParams{
				Name:            args[0],
				OpenedByDefault: openedByDefault,
			}
			min, err := parseDecimal(minimum)
			if err != nil {
				return err
			}
			params.MinimumQuantity = min
			if cmd.Flags().Changed("ttl") {
				d, err := parseTTL(ttl)
				if err != nil {
					return err
				}
				params.TTL = &d
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				id := s.CreateType(params)
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&minimum, "minimum-quantity", "m", "0",
		"cantidad mínima que se quiere tener en todo momento")
	cmd.Flags().StringVarP(&ttl, "ttl", "t", "",
		"vida útil una vez abierto (p. ej. 72h)")
	cmd.Flags().BoolVarP(&openedByDefault, "open-by-default", "o", false,
		"las instancias nuevas nacen abiertas (p. ej. comida fresca)")
	return cmd
}

func newReadTypesCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "rt",
		Short: "Lista los tipos de artículo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWithStore(cmd.Context(), false, func(s *inventory.Store) error {
				types := s.Types()
				if name != "" {
					types = s.TypesByName(name)
				}
				renderTypes(cmd.OutOrStdout(), types)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "filtra por fragmento del nombre")
	return cmd
}

func newUpdateTypeCmd(a *app) *cobra.Command {
	var (
		name            string
		minimum         string
		ttl             string
		clearTTL        bool
		openedByDefault bool
	)
	cmd := &cobra.Command{
		Use:   "ut <id>",
		Short: "Actualiza un tipo de artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch inventory.TypePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("minimum-quantity") {
				min, err := parseDecimal(minimum)
				if err != nil {
					return err
				}
				patch.MinimumQuantity = &min
			}
			if cmd.Flags().Changed("ttl") {
				d, err := parseTTL(ttl)
				if err != nil {
					return err
				}
				patch.TTL = &d
			}
			patch.ClearTTL = clearTTL
			if cmd.Flags().Changed("open-by-default") {
				patch.OpenedByDefault = &openedByDefault
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				return s.UpdateType(id, patch)
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "nuevo nombre")
	cmd.Flags().StringVarP(&minimum, "minimum-quantity", "m", "", "nueva cantidad mínima")
	cmd.Flags().StringVarP(&ttl, "ttl", "t", "", "nueva vida útil una vez abierto")
	cmd.Flags().BoolVar(&clearTTL, "clear-ttl", false, "elimina la vida útil del tipo")
	cmd.Flags().BoolVarP(&openedByDefault, "open-by-default", "o", false,
		"las instancias nuevas nacen abiertas")
	return cmd
}

func newDeleteTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dt <id>",
		Short: "Elimina un tipo de artículo y todas sus instancias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				s.DeleteType(id)
				return nil
			})
		},
	}
}
