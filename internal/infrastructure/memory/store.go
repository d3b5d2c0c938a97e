// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory).
// Sirve para desarrollo local y pruebas; replica las garantías del driver postgres:
// transacciones todo-o-nada, cantidad no negativa, SKU único y libro solo-inserción.
//
// Las transacciones se serializan a nivel de almacén y abrir una cuesta O(ítems): se copia
// el índice de ítems (no los ítems) y cada ítem se duplica solo al escribirlo. No está
// pensado para volúmenes de producción.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

type state struct {
	items         map[string]*entity.Item
	itemOrder     []string
	movements     []*entity.Movement
	locations     map[string]*entity.Location
	areas         map[string]*entity.Area
	units         map[string]*entity.StorageUnit
	unitOrder     []string
	notifications []*entity.Notification

	// ítems ya copiados por la tx; nil en el estado confirmado
	owned map[string]struct{}
}

func newState() *state {
	return &state{
		items:     make(map[string]*entity.Item),
		locations: make(map[string]*entity.Location),
		areas:     make(map[string]*entity.Area),
		units:     make(map[string]*entity.StorageUnit),
	}
}

// snapshot abre el estado de una tx. Dentro de Run solo escriben los repositorios de
// ítems y movimientos, así que la jerarquía y las notificaciones se comparten.
// Los slices llevan cap = len para que un append de la tx nunca pise el estado confirmado.
func (s *state) snapshot() *state {
	c := *s
	c.items = make(map[string]*entity.Item, len(s.items))
	for id, it := range s.items {
		c.items[id] = it
	}
	c.itemOrder = s.itemOrder[:len(s.itemOrder):len(s.itemOrder)]
	c.movements = s.movements[:len(s.movements):len(s.movements)]
	c.owned = make(map[string]struct{})
	return &c
}

// writableItem devuelve el ítem listo para mutar; dentro de una tx lo copia la primera vez.
func (s *state) writableItem(id string) (*entity.Item, bool) {
	it, ok := s.items[id]
	if !ok || s.owned == nil {
		return it, ok
	}
	if _, done := s.owned[id]; !done {
		it = copyItem(it)
		s.items[id] = it
		s.owned[id] = struct{}{}
	}
	return it, true
}

// Store contenedor en memoria. Las escrituras se serializan con writeMu (equivale al
// bloqueo de fila de postgres pero a nivel de almacén); las lecturas ven siempre el último commit.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view ejecuta fn sobre el estado de la tx o, fuera de ella, sobre el último commit.
func (s *Store) view(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

// update escribe en la tx o, fuera de ella, directamente y de forma atómica.
func (s *Store) update(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Items repositorio de ítems fuera de transacción.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{s: s} }

// Storage repositorio de la jerarquía de almacenamiento.
func (s *Store) Storage() *StorageRepository { return &StorageRepository{s: s} }

// Notifications repositorio de notificaciones.
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }

// TxRunner implementa inventory.TxRunner: fn trabaja sobre un snapshot y el commit lo publica.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializa la transacción completa; si fn falla o el contexto se cancela antes del commit,
// la copia se descarta y no queda ningún cambio.
func (r *TxRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	r.s.mu.RLock()
	tx := r.s.st.snapshot()
	r.s.mu.RUnlock()

	if err := fn(&ItemRepository{s: r.s, tx: tx}, &MovementRepository{s: r.s, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	tx.owned = nil
	r.s.mu.Lock()
	r.s.st = tx
	r.s.mu.Unlock()
	return nil
}

func copyItem(it *entity.Item) *entity.Item {
	cp := *it
	if it.Price != nil {
		p := *it.Price
		cp.Price = &p
	}
	if it.SKU != nil {
		sku := *it.SKU
		cp.SKU = &sku
	}
	if it.MinStock != nil {
		m := *it.MinStock
		cp.MinStock = &m
	}
	return &cp
}

func copyNotification(n *entity.Notification) *entity.Notification {
	cp := *n
	if n.Metadata != nil {
		cp.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
