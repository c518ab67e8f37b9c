package entity

import "time"

// ReferenceKind tipo de entidad de referencia resoluble por nombre.
type ReferenceKind string

const (
	ReferenceLocation ReferenceKind = "location"
	ReferenceSupplier ReferenceKind = "supplier"
	ReferenceCustomer ReferenceKind = "customer"
	ReferenceCategory ReferenceKind = "category"
)

// ReferenceKinds lista los tipos soportados, en orden estable.
var ReferenceKinds = []ReferenceKind{ReferenceLocation, ReferenceSupplier, ReferenceCustomer, ReferenceCategory}

// Valid indica si k es un tipo de referencia conocido.
func (k ReferenceKind) Valid() bool {
	switch k {
	case ReferenceLocation, ReferenceSupplier, ReferenceCustomer, ReferenceCategory:
		return true
	}
	return false
}

// Reference entidad simple con nombre único: ubicación, proveedor, cliente o categoría.
// Code, Email y Phone son opcionales según el tipo.
type Reference struct {
	ID        string
	Kind      ReferenceKind
	Name      string
	Code      *string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}
