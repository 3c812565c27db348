package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
)

// ──────────────────────────────────────────────
// Comandos de instancias de artículo
// ──────────────────────────────────────────────

func newCreateInstanceCmd(a *app) *cobra.Command {
	var (
		quantity  string
		model     string
		serial    string
		extra     string
		location  string
		value     string
		expiresAt string
	)
	cmd := &cobra.Command{
		Use:   "ci <id-tipo>",
		Short: "Crea una instancia de artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			params := inventory.CreateInstanceParams{ItemType: typeID}
			if cmd.Flags().Changed("quantity") {
				q, err := parseDecimal(quantity)
				if err != nil {
					return err
				}
				params.Quantity = &q
			}
			if cmd.Flags().Changed("model") {
				params.Model = &model
			}
			if cmd.Flags().Changed("serial") {
				params.Serial = &serial
			}
			if cmd.Flags().Changed("extra") {
				params.Extra = &extra
			}
			if cmd.Flags().Changed("location") {
				params.Location = &location
			}
			if cmd.Flags().Changed("value") {
				v, err := parseDecimal(value)
				if err != nil {
					return err
				}
				params.Value = &v
			}
			if cmd.Flags().Changed("expires-at") {
				t, err := parseTimestamp(expiresAt)
				if err != nil {
					return err
				}
				params.ExpiresAt = &t
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				id, err := s.CreateInstance(params)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1",
		"cantidad de la instancia; la unidad la define el tipo")
	cmd.Flags().StringVarP(&model, "model", "m", "", "modelo")
	cmd.Flags().StringVarP(&serial, "serial", "s", "", "número de serie")
	cmd.Flags().StringVar(&extra, "extra", "", "nota libre")
	cmd.Flags().StringVarP(&location, "location", "l", "", "ubicación física")
	cmd.Flags().StringVarP(&value, "value", "v", "", "valor monetario")
	cmd.Flags().StringVarP(&expiresAt, "expires-at", "e", "", "fecha de vencimiento (RFC 3339)")
	return cmd
}

func newReadInstancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ri [id-tipo]",
		Short: "Lista las instancias activas, opcionalmente de un solo tipo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWithStore(cmd.Context(), false, func(s *inventory.Store) error {
				if len(args) == 0 {
					renderInstances(cmd.OutOrStdout(), s.Instances(), s)
					return nil
				}
				typeID, err := parseID(args[0])
				if err != nil {
					return err
				}
				instances, err := s.InstancesForType(typeID)
				if err != nil {
					return err
				}
				renderInstances(cmd.OutOrStdout(), instances, s)
				return nil
			})
		},
	}
}

func newUpdateInstanceCmd(a *app) *cobra.Command {
	var (
		quantity       string
		model          string
		serial         string
		extra          string
		location       string
		value          string
		clearValue     bool
		openedAt       string
		clearOpenedAt  bool
		expiresAt      string
		clearExpiresAt bool
	)
	cmd := &cobra.Command{
		Use:   "ui <id>",
		Short: "Actualiza una instancia de artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch inventory.InstancePatch
			if cmd.Flags().Changed("quantity") {
				q, err := parseDecimal(quantity)
				if err != nil {
					return err
				}
				patch.Quantity = &q
			}
			if cmd.Flags().Changed("model") {
				patch.Model = &model
			}
			if cmd.Flags().Changed("serial") {
				patch.Serial = &serial
			}
			if cmd.Flags().Changed("extra") {
				patch.Extra = &extra
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("value") {
				v, err := parseDecimal(value)
				if err != nil {
					return err
				}
				patch.Value = &v
			}
			patch.ClearValue = clearValue
			if cmd.Flags().Changed("opened-at") {
				t, err := parseTimestamp(openedAt)
				if err != nil {
					return err
				}
				patch.OpenedAt = &t
			}
			patch.ClearOpenedAt = clearOpenedAt
			if cmd.Flags().Changed("expires-at") {
				t, err := parseTimestamp(expiresAt)
				if err != nil {
					return err
				}
				patch.ExpiresAt = &t
			}
			patch.ClearExpiresAt = clearExpiresAt
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				return s.UpdateInstance(id, patch)
			})
		},
	}
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "nueva cantidad")
	cmd.Flags().StringVarP(&model, "model", "m", "", "modelo")
	cmd.Flags().StringVarP(&serial, "serial", "s", "", "número de serie")
	cmd.Flags().StringVar(&extra, "extra", "", "nota libre")
	cmd.Flags().StringVarP(&location, "location", "l", "", "ubicación física")
	cmd.Flags().StringVarP(&value, "value", "v", "", "valor monetario")
	cmd.Flags().BoolVar(&clearValue, "clear-value", false, "elimina el valor monetario")
	cmd.Flags().StringVarP(&openedAt, "opened-at", "o", "", "fecha de apertura (RFC 3339)")
	cmd.Flags().BoolVar(&clearOpenedAt, "clear-opened-at", false, "marca la instancia como no abierta")
	cmd.Flags().StringVarP(&expiresAt, "expires-at", "e", "", "fecha de vencimiento (RFC 3339)")
	cmd.Flags().BoolVar(&clearExpiresAt, "clear-expires-at", false, "elimina la fecha de vencimiento")
	return cmd
}

func newDeleteInstanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "di <id>",
		Short: "Elimina definitivamente una instancia de artículo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				return s.DeleteInstance(id)
			})
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id-tipo> [cantidad]",
		Short: "Consume una cantidad de un tipo, repartiendo entre instancias",
		Long: "Consume la cantidad indicada (por defecto 1) del tipo dado. Prefiere la " +
			"instancia ya abierta; abre la siguiente cuando hace falta y el sobrante " +
			"se reparte entre instancias hasta agotar el pedido o el stock.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty := decimal.NewFromInt(1)
			if len(args) == 2 {
				qty, err = parseDecimal(args[1])
				if err != nil {
					return err
				}
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				return s.UseInstance(typeID, qty)
			})
		},
	}
}

func newTrashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <id>",
		Short: "Manda una instancia a la papelera (conserva el registro)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runWithStore(cmd.Context(), true, func(s *inventory.Store) error {
				return s.Trash(id)
			})
		},
	}
}
