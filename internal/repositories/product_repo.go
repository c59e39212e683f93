package repositories

import (
	"context"

	"produk/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations return apperrors.ErrNotFound when no record exists for a
// well-formed id and *apperrors.InvalidIDError when the id is malformed.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}
