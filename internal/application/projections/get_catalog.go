package projections

import (
	"context"
	"log/slog"

	"vendorportal/internal/application/viewstate"
	"vendorportal/internal/domain/catalog"
)

// CatalogAPI defines the API surface needed by the catalog projection.
type CatalogAPI interface {
	ListProducts(ctx context.Context, categoryID string) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// GetCatalogQuery carries input for the catalog projection. CategoryID is the
// raw filter value from the query string; empty means no filter.
type GetCatalogQuery struct {
	CategoryID string
}

// GetCatalogDeps holds dependencies for the catalog projection.
type GetCatalogDeps struct {
	API   CatalogAPI
	Cache *viewstate.Cache[catalog.Product]
}

// CatalogResult carries the output of the catalog projection.
type CatalogResult struct {
	Products   []catalog.Product
	Categories []catalog.Category
	Stale      bool
}

// QueryGetCatalog fetches the shared catalog and its categories. The product
// list is authoritative; the category filter dropdown is an extra, so a
// failed category fetch leaves the screen usable without the filter.
func QueryGetCatalog(ctx context.Context, query GetCatalogQuery, deps GetCatalogDeps) (CatalogResult, error) {
	result := CatalogResult{}

	seq := deps.Cache.Begin()
	products, err := deps.API.ListProducts(ctx, query.CategoryID)
	if err != nil {
		result.Products = deps.Cache.Items()
		result.Stale = true
		return result, err
	}
	deps.Cache.Replace(seq, products)
	result.Products = products

	categories, err := deps.API.ListCategories(ctx)
	if err != nil {
		slog.Warn("catalog_event", "event", "category_fetch_failed", "error", err)
		return result, nil
	}
	result.Categories = categories
	return result, nil
}
