// Package alerts sintetiza el feed de alertas a partir de cinco fuentes independientes
// (stock bajo, sobrestock, movimientos recientes, proveedores nuevos, reposiciones pendientes).
package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Topes por fuente.
const (
	LowStockCap  = 50
	OverstockCap = 50
	MovementCap  = 50
	SupplierCap  = 20
	ReorderCap   = 50
)

// Nombres de fuente, en el orden fijo de concatenación.
const (
	SourceLowStock  = "low_stock"
	SourceOverstock = "overstock"
	SourceMovements = "movements"
	SourceSuppliers = "suppliers"
	SourceReorders  = "reorders"
)

// Options ventanas de tiempo de las fuentes.
type Options struct {
	MovementWindow time.Duration // por defecto 24h
	SupplierWindow time.Duration // por defecto 7 días
}

// Aggregator consulta las cinco fuentes y las combina en un feed ordenado.
// Nunca falla: una fuente con error se reemplaza por una alerta internal_warning.
type Aggregator struct {
	repo repository.AlertSourceRepository
	opts Options
	log  zerolog.Logger
	now  func() time.Time
}

// NewAggregator construye el agregador. Ventanas en cero toman su valor por defecto.
func NewAggregator(repo repository.AlertSourceRepository, opts Options, log zerolog.Logger) *Aggregator {
	if opts.MovementWindow <= 0 {
		opts.MovementWindow = 24 * time.Hour
	}
	if opts.SupplierWindow <= 0 {
		opts.SupplierWindow = 7 * 24 * time.Hour
	}
	return &Aggregator{
		repo: repo,
		opts: opts,
		log:  log.With().Str("component", "alert_aggregator").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (para pruebas).
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

type source struct {
	name string
	scan func(ctx context.Context, now time.Time) ([]entity.Alert, error)
}

func (a *Aggregator) sources() []source {
	return []source{
		{SourceLowStock, a.lowStock},
		{SourceOverstock, a.overstock},
		{SourceMovements, a.movements},
		{SourceSuppliers, a.suppliers},
		{SourceReorders, a.reorders},
	}
}

// ListAlerts ejecuta las cinco fuentes en paralelo, concatena los resultados en orden fijo de
// fuente y ordena por timestamp descendente (orden estable; sin timestamp cuenta como el más antiguo).
// Las fuentes no comparten snapshot.
func (a *Aggregator) ListAlerts(ctx context.Context) []entity.Alert {
	now := a.now()
	srcs := a.sources()
	results := make([][]entity.Alert, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src source) {
			defer wg.Done()
			alerts, err := a.runIsolated(ctx, src, now)
			if err != nil {
				a.log.Warn().Err(err).Str("source", src.name).Msg("fuente de alertas falló")
				results[i] = []entity.Alert{internalWarning(src.name, now)}
				return
			}
			results[i] = alerts
		}(i, src)
	}
	wg.Wait()

	var merged []entity.Alert
	for _, r := range results {
		merged = append(merged, r...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortTime().After(merged[j].SortTime())
	})
	if merged == nil {
		merged = []entity.Alert{}
	}
	return merged
}

// runIsolated ejecuta una fuente convirtiendo un panic en error.
func (a *Aggregator) runIsolated(ctx context.Context, src source, now time.Time) (alerts []entity.Alert, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en fuente %s: %v", src.name, r)
		}
	}()
	return src.scan(ctx, now)
}

// FilterByCategory conserva solo las alertas de la categoría indicada, manteniendo el orden.
func FilterByCategory(alerts []entity.Alert, category string) []entity.Alert {
	if category == "" {
		return alerts
	}
	out := make([]entity.Alert, 0, len(alerts))
	for _, al := range alerts {
		if al.Category == category {
			out = append(out, al)
		}
	}
	return out
}

// ValidCategory indica si c es una categoría de alerta conocida.
func ValidCategory(c string) bool {
	switch c {
	case entity.AlertLowStock, entity.AlertOverstock, entity.AlertMovement,
		entity.AlertSupplierNew, entity.AlertReorderPending, entity.AlertInternalWarning:
		return true
	}
	return false
}

func internalWarning(sourceName string, now time.Time) entity.Alert {
	ts := now
	return entity.Alert{
		ID:        entity.AlertInternalWarning + "-" + sourceName,
		Category:  entity.AlertInternalWarning,
		Title:     "Fuente de alertas no disponible",
		Message:   fmt.Sprintf("No se pudo consultar la fuente %q; el resto del feed está completo.", sourceName),
		Severity:  entity.SeverityWarning,
		Timestamp: &ts,
		Metadata:  map[string]any{"source": sourceName},
	}
}

// ── Fuentes ──────────────────────────────────────────────────────────────────

func (a *Aggregator) lowStock(ctx context.Context, _ time.Time) ([]entity.Alert, error) {
	items, err := a.repo.LowStockItems(ctx, LowStockCap)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Alert{
			ID:        entity.AlertLowStock + "-" + it.ID,
			Category:  entity.AlertLowStock,
			Title:     "Stock bajo",
			Message:   fmt.Sprintf("%s tiene %d unidades (mínimo %d)", it.Name, it.Quantity, derefInt(it.MinQuantity)),
			Severity:  entity.SeverityWarning,
			Timestamp: it.UpdatedAt,
			Metadata: map[string]any{
				"item_id":      it.ID,
				"quantity":     it.Quantity,
				"min_quantity": derefInt(it.MinQuantity),
			},
		})
	}
	return out, nil
}

func (a *Aggregator) overstock(ctx context.Context, _ time.Time) ([]entity.Alert, error) {
	items, err := a.repo.OverstockItems(ctx, OverstockCap)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Alert{
			ID:        entity.AlertOverstock + "-" + it.ID,
			Category:  entity.AlertOverstock,
			Title:     "Sobrestock",
			Message:   fmt.Sprintf("%s tiene %d unidades (máximo %d)", it.Name, it.Quantity, derefInt(it.MaxQuantity)),
			Severity:  entity.SeverityInfo,
			Timestamp: it.UpdatedAt,
			Metadata: map[string]any{
				"item_id":      it.ID,
				"quantity":     it.Quantity,
				"max_quantity": derefInt(it.MaxQuantity),
			},
		})
	}
	return out, nil
}

func (a *Aggregator) movements(ctx context.Context, now time.Time) ([]entity.Alert, error) {
	movs, err := a.repo.RecentMovements(ctx, now.Add(-a.opts.MovementWindow), MovementCap)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(movs))
	for _, m := range movs {
		title := "Entrada registrada"
		if m.Type == entity.MovementTypeOUT {
			title = "Salida registrada"
		}
		ts := m.MovementDate
		out = append(out, entity.Alert{
			ID:        entity.AlertMovement + "-" + m.ID,
			Category:  entity.AlertMovement,
			Title:     title,
			Message:   fmt.Sprintf("%s: %d unidades", m.ItemName, m.Quantity),
			Severity:  entity.SeverityInfo,
			Timestamp: &ts,
			Metadata: map[string]any{
				"movement_id":   m.ID,
				"item_id":       m.ItemID,
				"movement_type": m.Type,
				"quantity":      m.Quantity,
			},
		})
	}
	return out, nil
}

func (a *Aggregator) suppliers(ctx context.Context, now time.Time) ([]entity.Alert, error) {
	refs, err := a.repo.NewSuppliers(ctx, now.Add(-a.opts.SupplierWindow), SupplierCap)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(refs))
	for _, s := range refs {
		ts := s.CreatedAt
		out = append(out, entity.Alert{
			ID:        entity.AlertSupplierNew + "-" + s.ID,
			Category:  entity.AlertSupplierNew,
			Title:     "Nuevo proveedor",
			Message:   fmt.Sprintf("%s fue registrado como proveedor", s.Name),
			Severity:  entity.SeveritySuccess,
			Timestamp: &ts,
			Metadata:  map[string]any{"supplier_id": s.ID},
		})
	}
	return out, nil
}

func (a *Aggregator) reorders(ctx context.Context, _ time.Time) ([]entity.Alert, error) {
	list, err := a.repo.PendingReorders(ctx, ReorderCap)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(list))
	for _, r := range list {
		ts := r.CreatedAt
		meta := map[string]any{
			"reorder_id": r.ID,
			"item_id":    r.ItemID,
			"quantity":   r.Quantity,
		}
		if r.SupplierName != nil {
			meta["supplier"] = *r.SupplierName
		}
		out = append(out, entity.Alert{
			ID:        entity.AlertReorderPending + "-" + r.ID,
			Category:  entity.AlertReorderPending,
			Title:     "Reposición pendiente",
			Message:   fmt.Sprintf("%d unidades de %s por pedir", r.Quantity, r.ItemName),
			Severity:  entity.SeverityInfo,
			Timestamp: &ts,
			Metadata:  meta,
		})
	}
	return out, nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
