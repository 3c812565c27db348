package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnneKitsune/inventory-managoat/internal/domain"
	"github.com/AnneKitsune/inventory-managoat/internal/domain/entity"
	"github.com/AnneKitsune/inventory-managoat/internal/domain/inventory"
)

// Store es el motor del inventario: posee las colecciones de tipos e
// instancias, asigna ids, garantiza la integridad referencial entre ambas y
// aplica todo el ciclo de vida y las consultas derivadas.
//
// El uso previsto es un único Store por proceso: el caller lo carga desde un
// Repository al arrancar, ejecuta una secuencia síncrona de operaciones y
// persiste el Snapshot al final. El Store no es seguro para uso concurrente;
// un front end con varios callers debe serializar el acceso (ver interfaces/http).
type Store struct {
	types     []entity.ItemType
	instances []entity.ItemInstance
	now       func() time.Time
}

// Option configura el Store al construirlo.
type Option func(*Store)

// WithClock reemplaza la fuente de tiempo. Cada operación de nivel superior
// lee el reloj una sola vez, así que con un reloj fijo el comportamiento es
// totalmente determinista (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore construye un Store vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromSnapshot construye un Store a partir de las colecciones leídas
// por el colaborador de persistencia, conservando el orden de inserción.
func NewStoreFromSnapshot(types []entity.ItemType, instances []entity.ItemInstance, opts ...Option) *Store {
	s := NewStore(opts...)
	s.types = append(s.types, types...)
	s.instances = append(s.instances, instances...)
	return s
}

// Snapshot devuelve copias de ambas colecciones en orden de inserción,
// listas para entregarse al Repository. Incluye las instancias en papelera.
func (s *Store) Snapshot() ([]entity.ItemType, []entity.ItemInstance) {
	types := make([]entity.ItemType, 0, len(s.types))
	for _, t := range s.types {
		types = append(types, cloneType(t))
	}
	instances := make([]entity.ItemInstance, 0, len(s.instances))
	for _, i := range s.instances {
		instances = append(instances, cloneInstance(i))
	}
	return types, instances
}

// ─────────────────────────────────────────────────────────────────────────────
// Registro de tipos
// ─────────────────────────────────────────────────────────────────────────────

// CreateTypeParams entrada para CreateType.
type CreateTypeParams struct {
	Name            string
	MinimumQuantity decimal.Decimal
	TTL             *time.Duration
	OpenedByDefault bool
}

// TypePatch campos a modificar en un tipo; nil = sin cambio.
// ClearTTL elimina el TTL existente (un TTL nuevo y ClearTTL son excluyentes).
type TypePatch struct {
	Name            *string
	MinimumQuantity *decimal.Decimal
	TTL             *time.Duration
	ClearTTL        bool
	OpenedByDefault *bool
}

// CreateType da de alta un tipo y devuelve su id. Nunca falla: una cantidad
// mínima negativa se ajusta a cero.
func (s *Store) CreateType(p CreateTypeParams) int64 {
	min := p.MinimumQuantity
	if min.Sign() < 0 {
		min = decimal.Zero
	}
	t := entity.ItemType{
		ID:              s.freeTypeID(),
		Name:            p.Name,
		MinimumQuantity: min,
		TTL:             clonePtr(p.TTL),
		OpenedByDefault: p.OpenedByDefault,
	}
	s.types = append(s.types, t)
	return t.ID
}

// UpdateType aplica un patch campo a campo sobre un tipo existente.
func (s *Store) UpdateType(id int64, patch TypePatch) error {
	idx := s.typeIndex(id)
	if idx < 0 {
		return domain.ErrUnknownItemType
	}
	t := &s.types[idx]
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.MinimumQuantity != nil {
		min := *patch.MinimumQuantity
		if min.Sign() < 0 {
			min = decimal.Zero
		}
		t.MinimumQuantity = min
	}
	if patch.TTL != nil {
		t.TTL = clonePtr(patch.TTL)
	} else if patch.ClearTTL {
		t.TTL = nil
	}
	if patch.OpenedByDefault != nil {
		t.OpenedByDefault = *patch.OpenedByDefault
	}
	return nil
}

// DeleteType elimina el tipo y, en cascada, todas sus instancias (borrado
// duro, incondicional). Es idempotente: un id inexistente no es un error.
func (s *Store) DeleteType(id int64) {
	types := s.types[:0]
	for _, t := range s.types {
		if t.ID != id {
			types = append(types, t)
		}
	}
	s.types = types

	instances := s.instances[:0]
	for _, i := range s.instances {
		if i.ItemType != id {
			instances = append(instances, i)
		}
	}
	s.instances = instances
}

// TypeByID busca un tipo por id exacto.
func (s *Store) TypeByID(id int64) (entity.ItemType, error) {
	idx := s.typeIndex(id)
	if idx < 0 {
		return entity.ItemType{}, domain.ErrUnknownItemType
	}
	return cloneType(s.types[idx]), nil
}

// Types devuelve todos los tipos en orden de creación.
func (s *Store) Types() []entity.ItemType {
	out := make([]entity.ItemType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, cloneType(t))
	}
	return out
}

// TypesByName devuelve los tipos cuyo nombre contiene el fragmento dado
// (sin distinguir mayúsculas), en orden de creación.
func (s *Store) TypesByName(fragment string) []entity.ItemType {
	out := []entity.ItemType{}
	for _, t := range s.types {
		if t.Matches(fragment) {
			out = append(out, cloneType(t))
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de instancias
// ─────────────────────────────────────────────────────────────────────────────

// CreateInstanceParams entrada para CreateInstance. Quantity nil equivale a 1.
type CreateInstanceParams struct {
	ItemType  int64
	Quantity  *decimal.Decimal
	Model     *string
	Serial    *string
	Extra     *string
	Location  *string
	Value     *decimal.Decimal
	ExpiresAt *time.Time
}

// InstancePatch campos a modificar en una instancia; nil = sin cambio.
// Los flags Clear* vacían el campo opcional correspondiente.
type InstancePatch struct {
	Quantity       *decimal.Decimal
	Model          *string
	Serial         *string
	Extra          *string
	Location       *string
	Value          *decimal.Decimal
	ClearValue     bool
	OpenedAt       *time.Time
	ClearOpenedAt  bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
}

// CreateInstance da de alta una instancia del tipo indicado y devuelve su id.
// Si el tipo no existe devuelve ErrUnknownItemType sin mutar nada.
// Con OpenedByDefault en el tipo, la instancia nace abierta y su expiración
// se deriva del TTL del tipo (pisa cualquier expires_at del caller).
func (s *Store) CreateInstance(p CreateInstanceParams) (int64, error) {
	t, err := s.TypeByID(p.ItemType)
	if err != nil {
		return 0, err
	}

	now := s.now()
	qty := decimal.NewFromInt(1)
	if p.Quantity != nil {
		qty = *p.Quantity
	}
	if qty.Sign() < 0 {
		qty = decimal.Zero
	}

	inst := entity.ItemInstance{
		ID:        s.freeInstanceID(),
		ItemType:  p.ItemType,
		Quantity:  qty,
		Model:     clonePtr(p.Model),
		Serial:    clonePtr(p.Serial),
		Extra:     clonePtr(p.Extra),
		Location:  clonePtr(p.Location),
		Value:     clonePtr(p.Value),
		ExpiresAt: clonePtr(p.ExpiresAt),
		AddedAt:   now,
	}
	if t.OpenedByDefault {
		opened := now
		inst.OpenedAt = &opened
		if t.TTL != nil {
			expires := now.Add(*t.TTL)
			inst.ExpiresAt = &expires
		}
	}
	s.instances = append(s.instances, inst)
	return inst.ID, nil
}

// UpdateInstance aplica un patch campo a campo sobre una instancia existente.
func (s *Store) UpdateInstance(id int64, patch InstancePatch) error {
	idx := s.instanceIndex(id)
	if idx < 0 {
		return domain.ErrUnknownItemInstance
	}
	inst := &s.instances[idx]
	if patch.Quantity != nil {
		qty := *patch.Quantity
		if qty.Sign() < 0 {
			qty = decimal.Zero
		}
		inst.Quantity = qty
	}
	if patch.Model != nil {
		inst.Model = clonePtr(patch.Model)
	}
	if patch.Serial != nil {
		inst.Serial = clonePtr(patch.Serial)
	}
	if patch.Extra != nil {
		inst.Extra = clonePtr(patch.Extra)
	}
	if patch.Location != nil {
		inst.Location = clonePtr(patch.Location)
	}
	if patch.Value != nil {
		inst.Value = clonePtr(patch.Value)
	} else if patch.ClearValue {
		inst.Value = nil
	}
	if patch.OpenedAt != nil {
		inst.OpenedAt = clonePtr(patch.OpenedAt)
	} else if patch.ClearOpenedAt {
		inst.OpenedAt = nil
	}
	if patch.ExpiresAt != nil {
		inst.ExpiresAt = clonePtr(patch.ExpiresAt)
	} else if patch.ClearExpiresAt {
		inst.ExpiresAt = nil
	}
	return nil
}

// UseInstance consume stock de un tipo, no de una instancia concreta.
// Elige una instancia activa (preferencia por una ya abierta, si no la primera
// en orden de colección), le resta la cantidad y, si se agota, la fija a cero,
// la manda a la papelera y continúa con la siguiente hasta satisfacer el
// pedido o quedarse sin instancias. El sobrante sin stock no escala a error;
// solo un tipo sin ninguna instancia activa devuelve ErrNoMatchingInstance.
// Consumir de una instancia sin abrir la abre y deriva su expiración del TTL
// del tipo, sin empujar hacia el futuro una expiración ya registrada.
func (s *Store) UseInstance(typeID int64, quantity decimal.Decimal) error {
	now := s.now()
	remaining := quantity
	consumed := false
	for {
		idx := s.pickActive(typeID)
		if idx < 0 {
			if !consumed {
				return domain.ErrNoMatchingInstance
			}
			return nil
		}
		inst := &s.instances[idx]
		if inst.OpenedAt == nil {
			opened := now
			inst.OpenedAt = &opened
			if t, err := s.TypeByID(typeID); err == nil {
				inst.ExpiresAt = inventory.ExpiryOnOpen(now, t.TTL, inst.ExpiresAt)
			}
		}
		consumed = true
		newQty := inst.Quantity.Sub(remaining)
		if newQty.Sign() >= 0 {
			inst.Quantity = newQty
			return nil
		}
		// Agotada: el resto se traslada a la siguiente instancia activa.
		remaining = newQty.Neg()
		inst.Quantity = decimal.Zero
		removed := now
		inst.RemovedAt = &removed
	}
}

// Trash envía una instancia a la papelera (borrado blando): marca removed_at
// y no toca ningún otro campo. La instancia queda fuera de las vistas activas
// pero permanece en la colección. Repetir sobre una instancia ya en papelera
// conserva la marca original.
func (s *Store) Trash(id int64) error {
	idx := s.instanceIndex(id)
	if idx < 0 {
		return domain.ErrUnknownItemInstance
	}
	if s.instances[idx].RemovedAt == nil {
		removed := s.now()
		s.instances[idx].RemovedAt = &removed
	}
	return nil
}

// DeleteInstance elimina una instancia de la colección de forma permanente
// (borrado duro, sin rastro), a diferencia de Trash.
func (s *Store) DeleteInstance(id int64) error {
	idx := s.instanceIndex(id)
	if idx < 0 {
		return domain.ErrUnknownItemInstance
	}
	s.instances = append(s.instances[:idx], s.instances[idx+1:]...)
	return nil
}

// InstanceByID busca una instancia por id exacto (incluye las de la papelera).
func (s *Store) InstanceByID(id int64) (entity.ItemInstance, error) {
	idx := s.instanceIndex(id)
	if idx < 0 {
		return entity.ItemInstance{}, domain.ErrUnknownItemInstance
	}
	return cloneInstance(s.instances[idx]), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Consultas derivadas
// ─────────────────────────────────────────────────────────────────────────────

// Instances devuelve todas las instancias activas en orden de colección.
func (s *Store) Instances() []entity.ItemInstance {
	out := []entity.ItemInstance{}
	for _, i := range s.instances {
		if i.Active() {
			out = append(out, cloneInstance(i))
		}
	}
	return out
}

// InstancesForType devuelve las instancias activas del tipo, en orden de
// colección. Un tipo inexistente devuelve ErrUnknownItemType.
func (s *Store) InstancesForType(typeID int64) ([]entity.ItemInstance, error) {
	if s.typeIndex(typeID) < 0 {
		return nil, domain.ErrUnknownItemType
	}
	out := []entity.ItemInstance{}
	for _, i := range s.instances {
		if i.ItemType == typeID && i.Active() {
			out = append(out, cloneInstance(i))
		}
	}
	return out, nil
}

// QuantityForType suma la cantidad de las instancias activas del tipo.
// Sin instancias (o con el tipo inexistente) devuelve cero.
func (s *Store) QuantityForType(typeID int64) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range s.instances {
		if i.ItemType == typeID && i.Active() {
			sum = sum.Add(i.Quantity)
		}
	}
	return sum
}

// MissingTypes devuelve los tipos cuyo stock activo está estrictamente por
// debajo de su cantidad mínima. Un mínimo de cero nunca aparece como faltante.
func (s *Store) MissingTypes() []entity.ItemType {
	out := []entity.ItemType{}
	for _, t := range s.types {
		if s.QuantityForType(t.ID).LessThan(t.MinimumQuantity) {
			out = append(out, cloneType(t))
		}
	}
	return out
}

// ExpiredInstances devuelve las instancias con expires_at vencido respecto al
// reloj, incluidas las de la papelera (barrido de expiración completo).
func (s *Store) ExpiredInstances() []entity.ItemInstance {
	now := s.now()
	out := []entity.ItemInstance{}
	for _, i := range s.instances {
		if i.ExpiredAt(now) {
			out = append(out, cloneInstance(i))
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers internos
// ─────────────────────────────────────────────────────────────────────────────

// pickActive elige la instancia a consumir: la primera activa ya abierta del
// tipo, o en su defecto la primera activa en orden de colección. -1 si no hay.
func (s *Store) pickActive(typeID int64) int {
	first := -1
	for idx, i := range s.instances {
		if i.ItemType != typeID || !i.Active() {
			continue
		}
		if i.Opened() {
			return idx
		}
		if first < 0 {
			first = idx
		}
	}
	return first
}

func (s *Store) typeIndex(id int64) int {
	for idx, t := range s.types {
		if t.ID == id {
			return idx
		}
	}
	return -1
}

func (s *Store) instanceIndex(id int64) int {
	for idx, i := range s.instances {
		if i.ID == id {
			return idx
		}
	}
	return -1
}

// freeTypeID asigna ids de forma monótona: max(ids existentes) + 1.
func (s *Store) freeTypeID() int64 {
	var max int64
	for _, t := range s.types {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func (s *Store) freeInstanceID() int64 {
	var max int64
	for _, i := range s.instances {
		if i.ID > max {
			max = i.ID
		}
	}
	return max + 1
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneType(t entity.ItemType) entity.ItemType {
	t.TTL = clonePtr(t.TTL)
	return t
}

func cloneInstance(i entity.ItemInstance) entity.ItemInstance {
	i.Model = clonePtr(i.Model)
	i.Serial = clonePtr(i.Serial)
	i.Extra = clonePtr(i.Extra)
	i.Location = clonePtr(i.Location)
	i.Value = clonePtr(i.Value)
	i.OpenedAt = clonePtr(i.OpenedAt)
	i.ExpiresAt = clonePtr(i.ExpiresAt)
	i.RemovedAt = clonePtr(i.RemovedAt)
	return i
}
