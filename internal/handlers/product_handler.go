package handlers

import (
	"github.com/gofiber/fiber/v2"

	"produk/internal/services"
)

// ProductHandler handles HTTP requests for products. Handlers are thin
// adapters: extract id and body, call the service, serialize the result.
// Every failure is returned to Fiber's central error handler.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:productId", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:productId", h.HandleUpdateProduct)
	productRoutes.Delete("/:productId", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	doc, err := parseBody(c)
	if err != nil {
		return err
	}

	created, err := h.service.CreateProduct(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct partially updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	patch, err := parseBody(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), c.Params("productId"), patch)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// HandleDeleteProduct deletes a product and returns the deleted record.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(deleted)
}

// parseBody decodes a JSON request body into a document keyed by field
// name. Field-level checks belong to the schema, not the handler.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	doc := map[string]any{}
	if err := c.BodyParser(&doc); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return doc, nil
}
