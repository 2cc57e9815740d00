package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType clasificación del catálogo.
type ProductType string

const (
	ProductTypeFrame       ProductType = "FRAME"
	ProductTypeLens        ProductType = "LENS"
	ProductTypeContactLens ProductType = "CONTACT_LENS"
	ProductTypeAccessory   ProductType = "ACCESSORY"
	ProductTypeService     ProductType = "SERVICE"
)

// Valid informa si t es uno de los tipos del catálogo.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeFrame, ProductTypeLens, ProductTypeContactLens, ProductTypeAccessory, ProductTypeService:
		return true
	}
	return false
}

// Product elemento del catálogo. Los de tipo SERVICE se venden sin existencias.
type Product struct {
	ID          string
	Name        string
	Type        ProductType
	Description string
	Price       decimal.Decimal // precio de venta sugerido
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsService informa si el producto se vende como servicio.
func (p *Product) IsService() bool {
	return p.Type == ProductTypeService
}
