package sales

import (
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

func toOrderResponse(o *entity.SalesOrder, payments []*entity.Payment) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:         o.ID,
		PatientID:  o.PatientID,
		OrderDate:  o.OrderDate,
		Status:     string(o.Status),
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		Total:      o.Total,
		AmountPaid: o.AmountPaid,
		BalanceDue: o.BalanceDue,
		CreatedBy:  o.CreatedBy,
		ShiftID:    o.ShiftID,
		Notes:      o.Notes,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:              it.ID,
			Kind:            string(it.Kind),
			InventoryItemID: it.InventoryItemID,
			ProductID:       it.ProductID,
			Description:     it.Description,
			Prescription:    it.Prescription,
			LensAttributes:  it.LensAttributes,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Subtotal:        it.Subtotal,
			Restocked:       it.Restocked,
		})
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, *toPaymentResponse(p))
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Date:           p.Date,
		Amount:         p.Amount,
		Method:         string(p.Method),
		BankName:       p.BankName,
		TransactionRef: p.TransactionRef,
		ReceivedBy:     p.ReceivedBy,
		ShiftID:        p.ShiftID,
	}
}
