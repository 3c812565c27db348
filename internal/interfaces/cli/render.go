package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Las tablas van a stdout; el logger escribe en stderr, así la salida
// tabulada se puede canalizar sin ruido.

func renderTypes(w io.Writer, types []entity.ItemType) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tname\tmin\tttl\topen default")
	for _, t := range types {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n",
			t.ID, t.Name, t.MinimumQuantity.String(), durationCell(t.TTL), t.OpenedByDefault)
	}
	tw.Flush()
}

func renderInstances(w io.Writer, instances []entity.ItemInstance, s *inventory.Store) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\t(id)item type\tquantity\tmodel\tserial\textra\tlocation\tvalue\topened at\texpires at")
	for _, in := range instances {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			in.ID,
			typeCell(in.ItemType, s),
			in.Quantity.String(),
			stringCell(in.Model),
			stringCell(in.Serial),
			stringCell(in.Extra),
			stringCell(in.Location),
			decimalCell(in.Value),
			timeCell(in.OpenedAt),
			timeCell(in.ExpiresAt),
		)
	}
	tw.Flush()
}

// typeCell muestra "(id)nombre" del tipo asociado, o solo el id si el tipo ya
// no existe (instancias vencidas pueden sobrevivir en la papelera).
func typeCell(typeID int64, s *inventory.Store) string {
	t, err := s.TypeByID(typeID)
	if err != nil {
		return fmt.Sprintf("(%d)?", typeID)
	}
	return fmt.Sprintf("(%d)%s", typeID, t.Name)
}

func stringCell(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func decimalCell(v *decimal.Decimal) string {
	if v == nil {
		return "-"
	}
	return v.String()
}

func timeCell(v *time.Time) string {
	if v == nil {
		return "-"
	}
	return v.UTC().Format(time.RFC3339)
}

func durationCell(v *time.Duration) string {
	if v == nil {
		return "-"
	}
	return v.String()
}
