package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
)

// Repository persiste el inventario en SQLite con el mismo contrato de
// snapshot que el backend de archivos JSON: Load lee todo al arrancar y Save
// reemplaza ambas tablas en una transacción al terminar.
// Los decimales se guardan como TEXT para no perder precisión, el TTL como
// segundos (REAL) y los timestamps en RFC 3339.
type Repository struct {
	db *sql.DB
}

// NewRepository construye el repositorio sobre una base ya migrada (ver Open).
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load lee ambas colecciones en orden de inserción (columna seq).
func (r *Repository) Load(ctx context.Context) ([]entity.ItemType, []entity.ItemInstance, error) {
	types, err := r.loadTypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("leer tipos: %w", err)
	}
	instances, err := r.loadInstances(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("leer instancias: %w", err)
	}
	return types, instances, nil
}

// Save reemplaza el contenido de ambas tablas dentro de una transacción.
func (r *Repository) Save(ctx context.Context, types []entity.ItemType, instances []entity.ItemInstance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_instances`); err != nil {
		return fmt.Errorf("vaciar instancias: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM item_types`); err != nil {
		return fmt.Errorf("vaciar tipos: %w", err)
	}

	for _, t := range types {
		var ttl *float64
		if t.TTL != nil {
			secs := t.TTL.Seconds()
			ttl = &secs
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO item_types (id, name, minimum_quantity, ttl, opened_by_default)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.MinimumQuantity.String(), ttl, t.OpenedByDefault,
		)
		if err != nil {
			return fmt.Errorf("guardar tipo %d: %w", t.ID, err)
		}
	}

	for _, i := range instances {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO item_instances
				(id, item_type, quantity, model, serial, extra, location, value,
				 opened_at, expires_at, added_at, removed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.ItemType, i.Quantity.String(),
			i.Model, i.Serial, i.Extra, i.Location, decimalText(i.Value),
			timeText(i.OpenedAt), timeText(i.ExpiresAt),
			i.AddedAt.Format(time.RFC3339Nano), timeText(i.RemovedAt),
		)
		if err != nil {
			return fmt.Errorf("guardar instancia %d: %w", i.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}

func (r *Repository) loadTypes(ctx context.Context) ([]entity.ItemType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, minimum_quantity, ttl, opened_by_default
		FROM item_types ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []entity.ItemType{}
	for rows.Next() {
		var (
			t   entity.ItemType
			min string
			ttl sql.NullFloat64
		)
		if err := rows.Scan(&t.ID, &t.Name, &min, &ttl, &t.OpenedByDefault); err != nil {
			return nil, err
		}
		t.MinimumQuantity, err = decimal.NewFromString(min)
		if err != nil {
			return nil, fmt.Errorf("minimum_quantity del tipo %d: %w", t.ID, err)
		}
		if ttl.Valid {
			d := time.Duration(ttl.Float64 * float64(time.Second))
			t.TTL = &d
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *Repository) loadInstances(ctx context.Context) ([]entity.ItemInstance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_type, quantity, model, serial, extra, location, value,
		       opened_at, expires_at, added_at, removed_at
		FROM item_instances ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []entity.ItemInstance{}
	for rows.Next() {
		var (
			i                              entity.ItemInstance
			qty, addedAt                   string
			value                          sql.NullString
			openedAt, expiresAt, removedAt sql.NullString
		)
		if err := rows.Scan(&i.ID, &i.ItemType, &qty,
			&i.Model, &i.Serial, &i.Extra, &i.Location, &value,
			&openedAt, &expiresAt, &addedAt, &removedAt); err != nil {
			return nil, err
		}
		i.Quantity, err = decimal.NewFromString(qty)
		if err != nil {
			return nil, fmt.Errorf("quantity de la instancia %d: %w", i.ID, err)
		}
		if value.Valid {
			v, err := decimal.NewFromString(value.String)
			if err != nil {
				return nil, fmt.Errorf("value de la instancia %d: %w", i.ID, err)
			}
			i.Value = &v
		}
		if i.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt); err != nil {
			return nil, fmt.Errorf("added_at de la instancia %d: %w", i.ID, err)
		}
		if i.OpenedAt, err = parseTime(openedAt); err != nil {
			return nil, fmt.Errorf("opened_at de la instancia %d: %w", i.ID, err)
		}
		if i.ExpiresAt, err = parseTime(expiresAt); err != nil {
			return nil, fmt.Errorf("expires_at de la instancia %d: %w", i.ID, err)
		}
		if i.RemovedAt, err = parseTime(removedAt); err != nil {
			return nil, fmt.Errorf("removed_at de la instancia %d: %w", i.ID, err)
		}
		instances = append(instances, i)
	}
	return instances, rows.Err()
}

func decimalText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func timeText(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
