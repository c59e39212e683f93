package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"produk/internal/models"
	"produk/internal/repositories"
	"produk/internal/schema"
	"produk/pkg/rabbitmq"
)

// EventPublisher publishes product lifecycle events. Satisfied by
// *rabbitmq.Client; nil disables publishing.
type EventPublisher interface {
	PublishProductEvent(event string, payload any) error
}

// ProductService handles business logic related to products: schema
// validation, timestamp management and event publication around the
// repository.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	logger *zap.Logger
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and persists a new product. The storage layer
// assigns the id; timestamps are set here.
func (s *ProductService) CreateProduct(ctx context.Context, doc map[string]any) (*models.Product, error) {
	product, err := schema.ValidateProduct(doc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventProductCreated, product)
	return product, nil
}

// UpdateProduct merges a partial patch onto the existing record, validates
// the merged result and persists it. The whole merged document is
// re-validated so a patch can never leave the record in a state a fresh
// create would reject.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch map[string]any) (*models.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := schema.ValidateProduct(schema.Merge(existing, patch))
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":        merged.Name,
		"price":       merged.Price,
		"category":    merged.Category,
		"description": merged.Description,
		"updatedAt":   time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventProductUpdated, updated)
	return updated, nil
}

// DeleteProduct removes a product and returns the value that existed
// immediately before removal.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventProductDeleted, deleted)
	return deleted, nil
}

// publish sends a product event if a publisher is configured. Publish
// failures are logged and never fail the request.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, product); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event", event),
			zap.String("product_id", product.ID.Hex()),
			zap.Error(err))
	}
}
