package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// LineKind tipo de línea de una orden de venta. Determina qué referencia es válida.
type LineKind string

const (
	LineKindStock       LineKind = "STOCK"        // respaldada por un InventoryItem (restockeable)
	LineKindService     LineKind = "SERVICE"      // producto de tipo servicio (examen, ajuste...)
	LineKindCustomLens  LineKind = "CUSTOM_LENS"  // lente a medida según receta
	LineKindCustomQuote LineKind = "CUSTOM_QUOTE" // cotización libre
)

// Valid informa si el tipo de línea pertenece a la enumeración.
func (k LineKind) Valid() bool {
	switch k {
	case LineKindStock, LineKindService, LineKindCustomLens, LineKindCustomQuote:
		return true
	}
	return false
}

// Stockable solo las líneas de inventario mueven existencias.
func (k LineKind) Stockable() bool {
	return k == LineKindStock
}

// SalesOrderItem línea de una orden de venta. Kind decide cuál de las referencias aplica:
//
//	STOCK        -> InventoryItemID
//	SERVICE      -> ProductID
//	CUSTOM_LENS  -> Description + Prescription (+ LensAttributes)
//	CUSTOM_QUOTE -> Description
type SalesOrderItem struct {
	ID              string
	OrderID         string
	Kind            LineKind
	InventoryItemID string
	ProductID       string
	Description     string
	Prescription    *Prescription
	LensAttributes  map[string]string
	Quantity        int
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
	Restocked       bool
}

// Recalculate Subtotal = Quantity * UnitPrice.
func (it *SalesOrderItem) Recalculate() {
	it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Validate revisa la forma de la línea y devuelve todas las violaciones encontradas.
// No consulta existencia de referencias (eso lo hace el caso de uso).
func (it *SalesOrderItem) Validate() domain.Violations {
	var v domain.Violations
	if it.Quantity <= 0 {
		v.Add("quantity", "debe ser mayor que cero")
	}
	if it.UnitPrice.IsNegative() {
		v.Add("unit_price", "no puede ser negativo")
	}
	switch it.Kind {
	case LineKindStock:
		if isBlank(it.InventoryItemID) {
			v.Add("inventory_item_id", "requerido para líneas de inventario")
		}
		if it.ProductID != "" || it.Description != "" {
			v.Add("kind", "una línea de inventario solo admite inventory_item_id")
		}
	case LineKindService:
		if isBlank(it.ProductID) {
			v.Add("product_id", "requerido para líneas de servicio")
		}
		if it.InventoryItemID != "" || it.Description != "" {
			v.Add("kind", "una línea de servicio solo admite product_id")
		}
	case LineKindCustomLens:
		if isBlank(it.Description) {
			v.Add("description", "requerida para lentes a medida")
		}
		if it.Prescription == nil {
			v.Add("prescription", "requerida para lentes a medida")
		}
		if it.InventoryItemID != "" || it.ProductID != "" {
			v.Add("kind", "un lente a medida no referencia inventario ni servicios")
		}
	case LineKindCustomQuote:
		if isBlank(it.Description) {
			v.Add("description", "requerida para cotizaciones")
		}
		if it.InventoryItemID != "" || it.ProductID != "" {
			v.Add("kind", "una cotización no referencia inventario ni servicios")
		}
	default:
		v.Addf("kind", "tipo de línea desconocido %q", it.Kind)
	}
	if it.Prescription != nil {
		v.Merge("prescription.", it.Prescription.Validate())
	}
	return v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
