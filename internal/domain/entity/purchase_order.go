package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// PurchaseStatus estado de una orden de compra y de cada una de sus líneas.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusPartial   PurchaseStatus = "PARTIAL"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// PurchaseOrder orden de compra a proveedor.
type PurchaseOrder struct {
	ID        string
	Supplier  string
	OrderDate time.Time
	Status    PurchaseStatus
	Notes     string
	CreatedBy string
	Items     []*PurchaseOrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PurchaseOrderItem línea de compra: cantidad pedida vs recibida.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	InventoryItemID  string
	QuantityOrdered  int
	QuantityReceived int
	UnitCost         decimal.Decimal
	Status           PurchaseStatus
}

// Outstanding unidades pendientes de recibir.
func (it *PurchaseOrderItem) Outstanding() int {
	return it.QuantityOrdered - it.QuantityReceived
}

func (it *PurchaseOrderItem) refreshStatus() {
	switch {
	case it.QuantityReceived >= it.QuantityOrdered:
		it.Status = PurchaseStatusReceived
	case it.QuantityReceived > 0:
		it.Status = PurchaseStatusPartial
	default:
		it.Status = PurchaseStatusPending
	}
}

// Item busca una línea por ID.
func (po *PurchaseOrder) Item(id string) *PurchaseOrderItem {
	for _, it := range po.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Receive registra cantidades recibidas por línea (itemID -> cantidad) y avanza estados.
// Valida todo antes de mutar: o se aplica la recepción completa o nada.
func (po *PurchaseOrder) Receive(quantities map[string]int, now time.Time) error {
	if po.Status == PurchaseStatusCancelled || po.Status == PurchaseStatusReceived {
		return domain.ErrConflict
	}
	var v domain.Violations
	if len(quantities) == 0 {
		v.Add("items", "debe recibir al menos una línea")
	}
	for id, qty := range quantities {
		it := po.Item(id)
		switch {
		case it == nil:
			v.Add("items."+id, "la línea no pertenece a la orden de compra")
		case qty <= 0:
			v.Add("items."+id, "la cantidad debe ser mayor que cero")
		case qty > it.Outstanding():
			v.Addf("items."+id, "supera lo pendiente (%d)", it.Outstanding())
		}
	}
	if err := v.Err(); err != nil {
		return err
	}
	for id, qty := range quantities {
		it := po.Item(id)
		it.QuantityReceived += qty
		it.refreshStatus()
	}
	po.refreshStatus()
	po.UpdatedAt = now
	return nil
}

// Cancel solo si no se ha recibido nada.
func (po *PurchaseOrder) Cancel(now time.Time) error {
	if po.Status != PurchaseStatusPending {
		return domain.ErrConflict
	}
	po.Status = PurchaseStatusCancelled
	po.UpdatedAt = now
	return nil
}

func (po *PurchaseOrder) refreshStatus() {
	all, some := true, false
	for _, it := range po.Items {
		if it.Status != PurchaseStatusReceived {
			all = false
		}
		if it.QuantityReceived > 0 {
			some = true
		}
	}
	switch {
	case all && len(po.Items) > 0:
		po.Status = PurchaseStatusReceived
	case some:
		po.Status = PurchaseStatusPartial
	default:
		po.Status = PurchaseStatusPending
	}
}
