// Package schema declares the shape of a Product document and validates
// candidate records against it. The per-field rules are held in a table and
// evaluated by a small interpreter, so create and update share the exact
// same validation path.
package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"produk/internal/apperrors"
	"produk/internal/models"
)

// Categories is the closed set of allowed product categories.
var Categories = []string{"books", "electronics", "clothing", "other"}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
)

// rule describes how one field is normalized and whether it must be
// present. Range, enum and length bounds live in the validate tags on
// models.Product and run after normalization.
type rule struct {
	field       string
	kind        fieldKind
	required    bool
	trim        bool
	lowercase   bool
	hasDefault  bool
	def         any
	round       bool
	requiredMsg string
	typeMsg     string
}

// productRules is evaluated in order: trim, lowercase, defaults, then the
// tag-based bound checks. An omitted category takes its default rather
// than failing the required check.
var productRules = []rule{
	{
		field: "name", kind: kindString, required: true, trim: true,
		requiredMsg: "Product name is required",
		typeMsg:     "Name must be a string",
	},
	{
		field: "price", kind: kindNumber, required: true, round: true,
		requiredMsg: "Price is required",
		typeMsg:     "Price must be a number",
	},
	{
		field: "category", kind: kindString, required: true, trim: true, lowercase: true,
		hasDefault: true, def: "other",
		requiredMsg: "Category is required",
		typeMsg:     "Category must be a string",
	},
	{
		field: "description", kind: kindString, trim: true,
		hasDefault: true, def: "",
		typeMsg: "Description must be a string",
	},
}

// boundMessages maps a struct field and failed validate tag to the message
// reported to the caller.
var boundMessages = map[string]map[string]string{
	"Name": {
		"min": "Name must be at least 2 characters long",
		"max": "Name cannot exceed 100 characters",
	},
	"Price": {
		"gte": "Price must be a positive number",
		"lte": "Price cannot exceed 1,000,000",
	},
	"Category": {
		"oneof": "%v is not a valid category. Allowed: " + strings.Join(Categories, ", "),
	},
	"Description": {
		"max": "Description cannot exceed 1000 characters",
	},
}

var validate = validator.New()

// ValidateProduct normalizes and validates a full candidate document keyed
// by JSON field name. Unknown fields are dropped, matching strict-schema
// storage. It returns a Product carrying only the schema fields; id and
// timestamps are left zero for the caller to manage.
func ValidateProduct(doc map[string]any) (*models.Product, error) {
	var fieldErrs []apperrors.FieldError
	normalized := make(map[string]any, len(productRules))

	for _, r := range productRules {
		value, present := doc[r.field]

		if present && r.kind == kindString {
			s, ok := value.(string)
			if !ok {
				fieldErrs = append(fieldErrs, apperrors.FieldError{Field: r.field, Message: r.typeMsg})
				continue
			}
			if r.trim {
				s = strings.TrimSpace(s)
			}
			if r.lowercase {
				s = strings.ToLower(s)
			}
			value = s
			// An empty string does not satisfy a required text field.
			if s == "" && r.required {
				fieldErrs = append(fieldErrs, apperrors.FieldError{Field: r.field, Message: r.requiredMsg})
				continue
			}
		}

		if present && r.kind == kindNumber {
			n, ok := value.(float64)
			if !ok {
				fieldErrs = append(fieldErrs, apperrors.FieldError{Field: r.field, Message: r.typeMsg})
				continue
			}
			if r.round {
				value = roundPrice(n)
			} else {
				value = n
			}
		}

		if !present {
			if r.hasDefault {
				value = r.def
			} else if r.required {
				fieldErrs = append(fieldErrs, apperrors.FieldError{Field: r.field, Message: r.requiredMsg})
				continue
			} else {
				continue
			}
		}

		normalized[r.field] = value
	}

	product := productFromFields(normalized)

	if err := validate.Struct(product); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fieldErrs = append(fieldErrs, boundError(ve))
			}
		} else {
			return nil, err
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &apperrors.ValidationError{Fields: fieldErrs}
	}
	return product, nil
}

// Merge overlays a partial patch onto an existing record and returns the
// resulting full document, ready for ValidateProduct. Only schema fields
// are taken from the patch, so an update can never leave the record in a
// state a fresh create would reject.
func Merge(existing *models.Product, patch map[string]any) map[string]any {
	merged := map[string]any{
		"name":        existing.Name,
		"price":       existing.Price,
		"category":    existing.Category,
		"description": existing.Description,
	}
	for _, r := range productRules {
		if v, ok := patch[r.field]; ok {
			merged[r.field] = v
		}
	}
	return merged
}

func productFromFields(fields map[string]any) *models.Product {
	p := &models.Product{}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := fields["category"].(string); ok {
		p.Category = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	return p
}

func boundError(ve validator.FieldError) apperrors.FieldError {
	field := strings.ToLower(ve.Field())
	if msgs, ok := boundMessages[ve.Field()]; ok {
		if msg, ok := msgs[ve.Tag()]; ok {
			if strings.Contains(msg, "%v") {
				return apperrors.FieldError{Field: field, Message: fmt.Sprintf(msg, ve.Value())}
			}
			return apperrors.FieldError{Field: field, Message: msg}
		}
	}
	return apperrors.FieldError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
}

// roundPrice rounds a monetary amount to 2 decimal places using decimal
// arithmetic, avoiding float accumulation artifacts.
func roundPrice(price float64) float64 {
	return decimal.NewFromFloat(price).Round(2).InexactFloat64()
}
