package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"produk/internal/apperrors"
	"produk/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository with the same id and not-found semantics as the Mongo
// implementation. Used in tests and for running without a database.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its hex id.
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, &apperrors.InvalidIDError{Field: "_id", Value: id}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning a fresh id.
func (r *MemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, exists := r.products[product.ID.Hex()]; exists {
		return &apperrors.ConflictError{Field: "_id", Value: product.ID.Hex()}
	}
	r.products[product.ID.Hex()] = *product
	return nil
}

// Update applies the given fields to an existing product and returns the
// result.
func (r *MemoryProductRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, &apperrors.InvalidIDError{Field: "_id", Value: id}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	if v, ok := fields["name"].(string); ok {
		product.Name = v
	}
	if v, ok := fields["price"].(float64); ok {
		product.Price = v
	}
	if v, ok := fields["category"].(string); ok {
		product.Category = v
	}
	if v, ok := fields["description"].(string); ok {
		product.Description = v
	}
	if v, ok := fields["updatedAt"].(time.Time); ok {
		product.UpdatedAt = v
	}

	r.products[id] = product
	return &product, nil
}

// Delete removes a product and returns its prior value.
func (r *MemoryProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, &apperrors.InvalidIDError{Field: "_id", Value: id}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	delete(r.products, id)
	return &product, nil
}
