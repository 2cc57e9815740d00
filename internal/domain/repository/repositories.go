package repository

// Repositories agrupa los repositorios atados a una misma transacción (o al pool, fuera de ella).
type Repositories struct {
	Shifts         ShiftRepository
	Orders         SalesOrderRepository
	Payments       PaymentRepository
	Items          InventoryItemRepository
	Movements      InventoryMovementRepository
	Products       ProductRepository
	PurchaseOrders PurchaseOrderRepository
	Expenses       ExpenseRepository
	Patients       PatientRepository
	Users          UserRepository
}
