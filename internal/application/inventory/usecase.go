package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

// UseCase catálogo de productos, ítems de inventario y ajustes manuales de existencias.
// Los ajustes corren en transacción con bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repositories, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, log: log}
}

// CreateProduct alta en el catálogo.
func (uc *UseCase) CreateProduct(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Can(entity.PermInventoryManage) {
		return nil, domain.ErrPermissionDenied
	}
	var v domain.Violations
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "requerido")
	}
	if !entity.ProductType(in.Type).Valid() {
		v.Addf("type", "tipo de producto desconocido %q", in.Type)
	}
	if in.Price.IsNegative() {
		v.Add("price", "no puede ser negativo")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Type:        entity.ProductType(in.Type),
		Description: in.Description,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repos.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts lista el catálogo ordenado por nombre. productType vacío devuelve todos.
func (uc *UseCase) ListProducts(ctx context.Context, productType string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	if productType != "" && !entity.ProductType(productType).Valid() {
		return nil, domain.Invalid("type", fmt.Sprintf("tipo de producto desconocido %q", productType))
	}
	page.DefaultPage()
	list, err := uc.repos.Products.List(ctx, entity.ProductType(productType), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// CreateItem alta de un ítem de inventario. La existencia inicial queda registrada como ajuste.
func (uc *UseCase) CreateItem(ctx context.Context, actor entity.Actor, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if !actor.Can(entity.PermInventoryManage) {
		return nil, domain.ErrPermissionDenied
	}
	var v domain.Violations
	if strings.TrimSpace(in.SKU) == "" {
		v.Add("sku", "requerido")
	}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "requerido")
	}
	if in.QuantityOnHand < 0 {
		v.Add("quantity_on_hand", "no puede ser negativa")
	}
	if in.MinStockLevel < 0 {
		v.Add("min_stock_level", "no puede ser negativo")
	}
	if in.SellingPrice.IsNegative() {
		v.Add("selling_price", "no puede ser negativo")
	}
	if in.CostPrice.IsNegative() {
		v.Add("cost_price", "no puede ser negativo")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Brand:         in.Brand,
		Model:         in.Model,
		Color:         in.Color,
		Size:          in.Size,
		SellingPrice:  in.SellingPrice,
		CostPrice:     in.CostPrice,
		MinStockLevel: in.MinStockLevel,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if in.ProductID != "" {
			p, err := repos.Products.GetByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.Invalid("product_id", "producto inexistente")
			}
			if p.IsService() {
				return domain.Invalid("product_id", "un servicio no lleva existencias")
			}
		}
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}
		if in.QuantityOnHand == 0 {
			return nil
		}
		created, err := AdjustInTx(ctx, repos, in.QuantityOnHand, MovementInput{
			ItemID:        item.ID,
			TransactionID: item.ID,
			UserID:        actor.UserID,
			Reason:        "existencia inicial",
			Now:           now,
		})
		if err != nil {
			return err
		}
		item = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem obtiene un ítem por ID.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// ListItems lista ítems (solo activos si activeOnly).
func (uc *UseCase) ListItems(ctx context.Context, activeOnly bool, page dto.PageRequest) ([]dto.InventoryItemResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Items.List(ctx, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// AdjustStock ajuste manual (conteo físico, merma, rotura). Delta distinto de cero y motivo obligatorio.
func (uc *UseCase) AdjustStock(ctx context.Context, actor entity.Actor, itemID string, in dto.AdjustStockRequest) (*dto.InventoryItemResponse, error) {
	if !actor.Can(entity.PermInventoryManage) {
		return nil, domain.ErrPermissionDenied
	}
	var v domain.Violations
	if in.Delta == 0 {
		v.Add("delta", "no puede ser cero")
	}
	if strings.TrimSpace(in.Reason) == "" {
		v.Add("reason", "requerido")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	var item *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		item, err = AdjustInTx(ctx, repos, in.Delta, MovementInput{
			ItemID:        itemID,
			TransactionID: uuid.New().String(),
			UserID:        actor.UserID,
			Reason:        in.Reason,
			Now:           time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Int("delta", in.Delta).Str("user_id", actor.UserID).
		Str("reason", in.Reason).Msg("ajuste de inventario")
	return toItemResponse(item), nil
}

// ListMovements kardex de un ítem, más recientes primero.
func (uc *UseCase) ListMovements(ctx context.Context, itemID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	item, err := uc.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Movements.ListByItem(ctx, itemID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			Reason:        m.Reason,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        string(p.Type),
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

func toItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:             it.ID,
		ProductID:      it.ProductID,
		SKU:            it.SKU,
		Name:           it.Name,
		Brand:          it.Brand,
		Model:          it.Model,
		Color:          it.Color,
		Size:           it.Size,
		QuantityOnHand: it.QuantityOnHand,
		SellingPrice:   it.SellingPrice,
		CostPrice:      it.CostPrice,
		MinStockLevel:  it.MinStockLevel,
		Active:         it.Active,
		UpdatedAt:      it.UpdatedAt,
	}
}
