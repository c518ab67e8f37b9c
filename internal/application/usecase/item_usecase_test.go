package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

type memItems struct {
	items       map[string]*entity.StockItem
	deactivated []string
}

func (m *memItems) Create(_ context.Context, it *entity.StockItem) error {
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*entity.ItemDetail, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &entity.ItemDetail{StockItem: *it}, nil
}

func (m *memItems) List(context.Context, repository.ItemFilter) ([]*entity.ItemDetail, int, error) {
	var out []*entity.ItemDetail
	for _, it := range m.items {
		out = append(out, &entity.ItemDetail{StockItem: *it})
	}
	return out, len(out), nil
}

func (m *memItems) Update(_ context.Context, it *entity.StockItem) error {
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memItems) Deactivate(_ context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

type recordingPoster struct {
	items  *memItems
	posted []inventory.MovementInput
}

func (p *recordingPoster) PostMovement(_ context.Context, in inventory.MovementInput) (*entity.MovementDetail, error) {
	p.posted = append(p.posted, in)
	p.items.items[in.ItemID].Quantity += in.Quantity
	return &entity.MovementDetail{}, nil
}

type labelResolver map[string]string

func (r labelResolver) Resolve(_ context.Context, _ entity.ReferenceKind, label string) (*string, error) {
	if id, ok := r[label]; ok {
		return &id, nil
	}
	return nil, nil
}

func intp(i int) *int { return &i }

func newItemUseCase() (*usecase.ItemUseCase, *memItems, *recordingPoster) {
	items := &memItems{items: map[string]*entity.StockItem{}}
	poster := &recordingPoster{items: items}
	uc := usecase.NewItemUseCase(items, labelResolver{"Herrajes": "cat-1", "Bodega Norte": "loc-1"}, poster, zerolog.Nop())
	return uc, items, poster
}

func TestItemCreate_InitialQuantityIsPostedAsMovement(t *testing.T) {
	uc, _, poster := newItemUseCase()

	item, err := uc.Create(context.Background(), dto.CreateItemRequest{
		Name: "Tornillo 1/4", UnitPrice: decimal.NewFromInt(300), InitialQuantity: 40,
		MinQuantity: intp(10), Category: "Herrajes", Location: "Bodega Norte",
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 40, item.Quantity)
	require.Len(t, poster.posted, 1)
	assert.Equal(t, entity.MovementTypeIN, poster.posted[0].Type)
	assert.Equal(t, "Saldo inicial", poster.posted[0].Notes)
	assert.Equal(t, "user-1", poster.posted[0].CreatedBy)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, "cat-1", *item.CategoryID)
	assert.Equal(t, "loc-1", *item.LocationID)
	assert.True(t, item.Active)
}

func TestItemCreate_ZeroInitialQuantityPostsNothing(t *testing.T) {
	uc, _, poster := newItemUseCase()

	item, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: "Tuerca"}, "")
	require.NoError(t, err)
	assert.Zero(t, item.Quantity)
	assert.Empty(t, poster.posted)
}

func TestItemCreate_Validation(t *testing.T) {
	uc, _, _ := newItemUseCase()
	ctx := context.Background()

	cases := []dto.CreateItemRequest{
		{Name: " "},
		{Name: "A", UnitPrice: decimal.NewFromInt(-1)},
		{Name: "A", UnitPrice: decimal.RequireFromString("0.125"), InitialQuantity: 3},
		{Name: "A", InitialQuantity: -1},
		{Name: "A", MinQuantity: intp(10), MaxQuantity: intp(5)},
		{Name: "A", Category: "No existe"},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestItemUpdate_NeverTouchesQuantity(t *testing.T) {
	uc, items, _ := newItemUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Arandela", InitialQuantity: 7, MaxQuantity: intp(100)}, "")
	require.NoError(t, err)

	newName := "Arandela plana"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{Name: &newName, MinQuantity: intp(2), ClearMax: true})
	require.NoError(t, err)

	assert.Equal(t, "Arandela plana", updated.Name)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, 2, *updated.MinQuantity)
	assert.Nil(t, updated.MaxQuantity)
	assert.NotNil(t, items.items[created.ID].UpdatedAt)

	_, err = uc.Update(ctx, "missing", dto.UpdateItemRequest{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDelete_IsSoft(t *testing.T) {
	uc, items, _ := newItemUseCase()
	require.NoError(t, uc.Delete(context.Background(), "x"))
	assert.Equal(t, []string{"x"}, items.deactivated)
}

func TestItemGet_NotFound(t *testing.T) {
	uc, _, _ := newItemUseCase()
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
