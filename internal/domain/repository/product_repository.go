package repository

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// ProductRepository catálogo de productos y servicios de la óptica.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List ordena por nombre; productType vacío no filtra.
	List(ctx context.Context, productType entity.ProductType, limit, offset int) ([]*entity.Product, error)
}
