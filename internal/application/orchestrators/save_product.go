package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vendorportal/internal/domain/catalog"
)

// CatalogAPI defines the API surface needed by the catalog mutations.
type CatalogAPI interface {
	CreateProduct(ctx context.Context, input catalog.ProductInput) error
	UpdateProduct(ctx context.Context, productID int64, input catalog.ProductInput) error
	DeleteProduct(ctx context.Context, productID int64) error
}

// SaveProductInput carries a catalog create (ProductID zero) or update.
type SaveProductInput struct {
	ProductID   int64
	Name        string
	ProductCode string
	Description string
	CategoryID  *int64
}

// SaveProductDeps holds dependencies for SaveProduct.
type SaveProductDeps struct {
	API CatalogAPI
}

var ErrMissingProductFields = errors.New("product name and code are required")

// ExecuteSaveProduct creates or updates a shared catalog product and
// returns the screen-level confirmation message.
// PRE: none
// POST: on success the catalog reflects the submission
func ExecuteSaveProduct(ctx context.Context, input SaveProductInput, deps SaveProductDeps) (string, error) {
	if input.Name == "" || input.ProductCode == "" {
		return "", ErrMissingProductFields
	}

	body := catalog.ProductInput{
		Name:        input.Name,
		ProductCode: input.ProductCode,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}

	if input.ProductID != 0 {
		if err := deps.API.UpdateProduct(ctx, input.ProductID, body); err != nil {
			return "", err
		}
		slog.Info("catalog_event", "event", "product_updated", "product_id", input.ProductID)
		return fmt.Sprintf("Product %q updated successfully", input.Name), nil
	}

	if err := deps.API.CreateProduct(ctx, body); err != nil {
		return "", err
	}
	slog.Info("catalog_event", "event", "product_created", "code", input.ProductCode)
	return fmt.Sprintf("Product %q created successfully", input.Name), nil
}

// DeleteProductInput carries a catalog delete request. Confirmed records
// that the destructive-action confirmation step was completed.
type DeleteProductInput struct {
	ProductID int64
	Name      string
	Confirmed bool
}

// DeleteProductDeps holds dependencies for DeleteProduct.
type DeleteProductDeps struct {
	API CatalogAPI
}

// ExecuteDeleteProduct removes a product from the shared catalog. Without
// confirmation no delete call is issued.
// PRE: none
// POST: on success the product no longer exists in the catalog
func ExecuteDeleteProduct(ctx context.Context, input DeleteProductInput, deps DeleteProductDeps) (string, error) {
	if !input.Confirmed {
		return "", ErrNotConfirmed
	}
	if err := deps.API.DeleteProduct(ctx, input.ProductID); err != nil {
		return "", err
	}
	slog.Info("catalog_event", "event", "product_deleted", "product_id", input.ProductID)
	return fmt.Sprintf("Product %q deleted successfully", input.Name), nil
}
