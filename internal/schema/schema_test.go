package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"produk/internal/apperrors"
	"produk/internal/models"
	"produk/internal/schema"
)

func TestValidateProduct_NormalizesFields(t *testing.T) {
	product, err := schema.ValidateProduct(map[string]any{
		"name":        "  Pen  ",
		"price":       10.555,
		"category":    " OTHER ",
		"description": "  writes well  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Pen", product.Name)
	assert.Equal(t, 10.56, product.Price)
	assert.Equal(t, "other", product.Category)
	assert.Equal(t, "writes well", product.Description)
}

func TestValidateProduct_AppliesDefaults(t *testing.T) {
	product, err := schema.ValidateProduct(map[string]any{
		"name":  "Pen",
		"price": 1.5,
	})

	require.NoError(t, err)
	assert.Equal(t, "other", product.Category, "omitted category takes its default")
	assert.Equal(t, "", product.Description)
}

func TestValidateProduct_MissingRequiredFields(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name": "P",
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "Name must be at least 2 characters long")
	assert.Contains(t, verr.Error(), "Price is required")
}

func TestValidateProduct_EmptyRequiredString(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":  "   ",
		"price": 1.0,
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Product name is required")
}

func TestValidateProduct_PriceBounds(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":  "Pen",
		"price": -1.0,
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Price must be a positive number")

	_, err = schema.ValidateProduct(map[string]any{
		"name":  "Pen",
		"price": 1000001.0,
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Price cannot exceed 1,000,000")
}

func TestValidateProduct_ZeroPriceIsValid(t *testing.T) {
	product, err := schema.ValidateProduct(map[string]any{
		"name":  "Freebie",
		"price": 0.0,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, product.Price)
}

func TestValidateProduct_InvalidCategory(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":     "Pen",
		"price":    1.5,
		"category": "food",
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "food is not a valid category")
	assert.Contains(t, verr.Error(), "books, electronics, clothing, other")
}

func TestValidateProduct_NameLengthBounds(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":  "P",
		"price": 1.0,
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Name must be at least 2 characters long")

	_, err = schema.ValidateProduct(map[string]any{
		"name":  strings.Repeat("x", 101),
		"price": 1.0,
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Name cannot exceed 100 characters")
}

func TestValidateProduct_DescriptionTooLong(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":        "Pen",
		"price":       1.0,
		"description": strings.Repeat("x", 1001),
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Description cannot exceed 1000 characters")
}

func TestValidateProduct_TypeMismatch(t *testing.T) {
	_, err := schema.ValidateProduct(map[string]any{
		"name":  12.0,
		"price": "cheap",
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Name must be a string")
	assert.Contains(t, verr.Error(), "Price must be a number")
}

func TestValidateProduct_IgnoresUnknownFields(t *testing.T) {
	product, err := schema.ValidateProduct(map[string]any{
		"name":  "Pen",
		"price": 1.5,
		"stock": 99.0,
		"id":    "anything",
	})

	require.NoError(t, err)
	assert.Equal(t, "Pen", product.Name)
	assert.True(t, product.ID.IsZero(), "id cannot be set through the document")
}

func TestMerge_OverlaysOnlySchemaFields(t *testing.T) {
	existing := &models.Product{
		Name:        "Pen",
		Price:       1.5,
		Category:    "other",
		Description: "writes well",
	}

	merged := schema.Merge(existing, map[string]any{
		"price": 50.0,
		"stock": 3.0,
	})

	assert.Equal(t, "Pen", merged["name"])
	assert.Equal(t, 50.0, merged["price"])
	assert.Equal(t, "other", merged["category"])
	assert.Equal(t, "writes well", merged["description"])
	assert.NotContains(t, merged, "stock")
}

func TestMerge_ThenValidateRejectsBadPatch(t *testing.T) {
	existing := &models.Product{
		Name:     "Pen",
		Price:    1.5,
		Category: "other",
	}

	_, err := schema.ValidateProduct(schema.Merge(existing, map[string]any{
		"category": "food",
	}))

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "is not a valid category")
}
