package sqlite

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// Filas con etiquetas db para sqlx; se traducen a entidades del dominio.

type itemRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Quantity     int             `db:"quantity"`
	MinQuantity  *int            `db:"min_quantity"`
	MaxQuantity  *int            `db:"max_quantity"`
	Active       bool            `db:"active"`
	CategoryID   *string         `db:"category_id"`
	LocationID   *string         `db:"location_id"`
	CreatedAt    sqlTime         `db:"created_at"`
	UpdatedAt    *sqlTime        `db:"updated_at"`
	CategoryName *string         `db:"category_name"`
	LocationName *string         `db:"location_name"`
}

func (r itemRow) item() entity.StockItem {
	return entity.StockItem{
		ID: r.ID, Name: r.Name, Description: r.Description, UnitPrice: r.UnitPrice,
		Quantity: r.Quantity, MinQuantity: r.MinQuantity, MaxQuantity: r.MaxQuantity, Active: r.Active,
		CategoryID: r.CategoryID, LocationID: r.LocationID,
		CreatedAt: r.CreatedAt.Time(), UpdatedAt: timePtr(r.UpdatedAt),
	}
}

func (r itemRow) detail() *entity.ItemDetail {
	return &entity.ItemDetail{StockItem: r.item(), CategoryName: r.CategoryName, LocationName: r.LocationName}
}

type movementRow struct {
	ID              string           `db:"id"`
	ItemID          string           `db:"item_id"`
	Type            string           `db:"movement_type"`
	Quantity        int              `db:"quantity"`
	UnitPrice       *decimal.Decimal `db:"unit_price"`
	TotalValue      *decimal.Decimal `db:"total_value"`
	Notes           string           `db:"notes"`
	ReferenceNumber string           `db:"reference_number"`
	LocationID      *string          `db:"location_id"`
	SupplierID      *string          `db:"supplier_id"`
	CustomerID      *string          `db:"customer_id"`
	MovementDate    sqlTime          `db:"movement_date"`
	CreatedBy       *string          `db:"created_by"`
	CreatedAt       sqlTime          `db:"created_at"`
	ItemName        string           `db:"item_name"`
	LocationName    *string          `db:"location_name"`
	SupplierName    *string          `db:"supplier_name"`
	CustomerName    *string          `db:"customer_name"`
	CreatedByName   *string          `db:"created_by_name"`
}

func (r movementRow) movement() entity.StockMovement {
	return entity.StockMovement{
		ID: r.ID, ItemID: r.ItemID, Type: r.Type, Quantity: r.Quantity,
		UnitPrice: r.UnitPrice, TotalValue: r.TotalValue, Notes: r.Notes, ReferenceNumber: r.ReferenceNumber,
		LocationID: r.LocationID, SupplierID: r.SupplierID, CustomerID: r.CustomerID,
		MovementDate: r.MovementDate.Time(), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt.Time(),
	}
}

func (r movementRow) detail() *entity.MovementDetail {
	return &entity.MovementDetail{
		StockMovement: r.movement(),
		ItemName:      r.ItemName,
		LocationName:  r.LocationName,
		SupplierName:  r.SupplierName,
		CustomerName:  r.CustomerName,
		CreatedByName: r.CreatedByName,
	}
}

type referenceRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Code      *string `db:"code"`
	Email     *string `db:"email"`
	Phone     *string `db:"phone"`
	CreatedAt sqlTime `db:"created_at"`
}

func (r referenceRow) reference(kind entity.ReferenceKind) *entity.Reference {
	return &entity.Reference{
		ID: r.ID, Kind: kind, Name: r.Name, Code: r.Code, Email: r.Email, Phone: r.Phone,
		CreatedAt: r.CreatedAt.Time(),
	}
}

type reorderRow struct {
	ID           string   `db:"id"`
	ItemID       string   `db:"item_id"`
	SupplierID   *string  `db:"supplier_id"`
	Quantity     int      `db:"quantity"`
	Status       string   `db:"status"`
	Notes        string   `db:"notes"`
	CreatedBy    *string  `db:"created_by"`
	CreatedAt    sqlTime  `db:"created_at"`
	UpdatedAt    *sqlTime `db:"updated_at"`
	ItemName     string   `db:"item_name"`
	SupplierName *string  `db:"supplier_name"`
}

func (r reorderRow) detail() *entity.ReorderDetail {
	return &entity.ReorderDetail{
		ReorderRequest: entity.ReorderRequest{
			ID: r.ID, ItemID: r.ItemID, SupplierID: r.SupplierID, Quantity: r.Quantity, Status: r.Status,
			Notes: r.Notes, CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt.Time(), UpdatedAt: timePtr(r.UpdatedAt),
		},
		ItemName:     r.ItemName,
		SupplierName: r.SupplierName,
	}
}

type userRow struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	Name         string  `db:"name"`
	Role         string  `db:"role"`
	Status       string  `db:"status"`
	CreatedAt    sqlTime `db:"created_at"`
	UpdatedAt    sqlTime `db:"updated_at"`
}

func (r userRow) user() *entity.User {
	return &entity.User{
		ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, Name: r.Name, Role: r.Role, Status: r.Status,
		CreatedAt: r.CreatedAt.Time(), UpdatedAt: r.UpdatedAt.Time(),
	}
}
