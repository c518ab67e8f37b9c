package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// memStore almacén en memoria con transacciones serializadas: cada Run trabaja sobre una copia
// y solo la publica si fn no devuelve error (Commit); si no, la descarta (Rollback).
type memStore struct {
	txMu sync.Mutex // una transacción a la vez (equivale al bloqueo de fila)
	mu   sync.Mutex // protege el estado publicado

	quantities map[string]int
	names      map[string]string
	movements  map[string]entity.StockMovement
	order      []string

	failCreate   error
	failIncrease error
	failDetail   error
}

func newMemStore() *memStore {
	return &memStore{
		quantities: map[string]int{},
		names:      map[string]string{},
		movements:  map[string]entity.StockMovement{},
	}
}

func (s *memStore) addItem(id, name string, qty int) {
	s.quantities[id] = qty
	s.names[id] = name
}

func (s *memStore) quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantities[id]
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

func (s *memStore) Run(ctx context.Context, fn func(repository.StockMovementRepository, repository.StockLedger) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tx := &memTx{store: s, quantities: map[string]int{}, movements: map[string]entity.StockMovement{}}
	for k, v := range s.quantities {
		tx.quantities[k] = v
	}
	for k, v := range s.movements {
		tx.movements[k] = v
	}
	tx.order = append([]string(nil), s.order...)
	s.mu.Unlock()

	if err := fn(tx, tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.quantities, s.movements, s.order = tx.quantities, tx.movements, tx.order
	s.mu.Unlock()
	return nil
}

type memTx struct {
	store      *memStore
	quantities map[string]int
	movements  map[string]entity.StockMovement
	order      []string
}

func (t *memTx) QuantityForUpdate(_ context.Context, itemID string) (int, error) {
	q, ok := t.quantities[itemID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return q, nil
}

func (t *memTx) Increase(_ context.Context, itemID string, amount int) error {
	if t.store.failIncrease != nil {
		return t.store.failIncrease
	}
	if _, ok := t.quantities[itemID]; !ok {
		return domain.ErrNotFound
	}
	t.quantities[itemID] += amount
	return nil
}

func (t *memTx) Decrease(_ context.Context, itemID string, amount int) error {
	q, ok := t.quantities[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	if q < amount {
		return &domain.InsufficientStockError{ItemID: itemID, Available: q, Requested: amount}
	}
	t.quantities[itemID] = q - amount
	return nil
}

func (t *memTx) Create(_ context.Context, m *entity.StockMovement) error {
	if t.store.failCreate != nil {
		return t.store.failCreate
	}
	t.movements[m.ID] = *m
	t.order = append(t.order, m.ID)
	return nil
}

func (t *memTx) GetForUpdate(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := t.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (t *memTx) Update(_ context.Context, m *entity.StockMovement) error {
	if _, ok := t.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	t.movements[m.ID] = *m
	return nil
}

func (t *memTx) Delete(_ context.Context, id string) error {
	delete(t.movements, id)
	return nil
}

func (t *memTx) GetDetail(context.Context, string) (*entity.MovementDetail, error) {
	return nil, errors.New("no disponible dentro de la transacción")
}

func (t *memTx) List(context.Context, repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	return nil, 0, errors.New("no disponible dentro de la transacción")
}

// ── Lecturas fuera de transacción ────────────────────────────────────────────

type memReader struct{ store *memStore }

func (r memReader) Create(context.Context, *entity.StockMovement) error {
	return errors.New("solo lectura")
}
func (r memReader) GetForUpdate(context.Context, string) (*entity.StockMovement, error) {
	return nil, errors.New("solo lectura")
}
func (r memReader) Update(context.Context, *entity.StockMovement) error {
	return errors.New("solo lectura")
}
func (r memReader) Delete(context.Context, string) error { return errors.New("solo lectura") }

func (r memReader) GetDetail(_ context.Context, id string) (*entity.MovementDetail, error) {
	s := r.store
	if s.failDetail != nil {
		return nil, s.failDetail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[id]
	if !ok {
		return nil, nil
	}
	return &entity.MovementDetail{StockMovement: m, ItemName: s.names[m.ItemID]}, nil
}

func (r memReader) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.MovementDetail
	for _, id := range s.order {
		m, ok := s.movements[id]
		if !ok || (f.ItemID != "" && m.ItemID != f.ItemID) || (f.Type != "" && m.Type != f.Type) {
			continue
		}
		out = append(out, &entity.MovementDetail{StockMovement: m, ItemName: s.names[m.ItemID]})
	}
	total := len(out)
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

// ── Resolver ─────────────────────────────────────────────────────────────────

type mapResolver struct {
	mu    sync.Mutex
	ids   map[entity.ReferenceKind]map[string]string
	calls int
}

func newResolver() *mapResolver {
	return &mapResolver{ids: map[entity.ReferenceKind]map[string]string{
		entity.ReferenceLocation: {"Bodega Norte": "loc-1"},
		entity.ReferenceSupplier: {"Acme": "sup-1"},
		entity.ReferenceCustomer: {"Ferretería Sur": "cus-1"},
	}}
}

func (r *mapResolver) Resolve(_ context.Context, kind entity.ReferenceKind, label string) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if label == "" {
		return nil, nil
	}
	if id, ok := r.ids[kind][label]; ok {
		return &id, nil
	}
	return nil, nil
}
