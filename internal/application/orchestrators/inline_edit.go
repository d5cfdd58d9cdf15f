package orchestrators

import (
	"context"
	"log/slog"

	"vendorportal/internal/domain/vendor"
)

// PriceAPI defines the API surface needed by UpdatePrice.
type PriceAPI interface {
	UpdatePrice(ctx context.Context, vendorID, productID int64, price float64) (vendor.PriceUpdate, error)
}

// StockAPI defines the API surface needed by UpdateStock.
type StockAPI interface {
	UpdateStock(ctx context.Context, vendorID, productID int64, stock int) (vendor.StockUpdate, error)
}

// UpdatePriceInput carries one staged price value for one enrollment row.
// Range enforcement belongs to the form input; the backend is the validator
// of record.
type UpdatePriceInput struct {
	VendorID  int64
	ProductID int64
	Price     float64
}

// UpdatePriceDeps holds dependencies for UpdatePrice.
type UpdatePriceDeps struct {
	API PriceAPI
}

// ExecuteUpdatePrice submits a single-field price update. The caller
// refetches the whole list afterwards; nothing is patched locally.
// PRE: a session is active and input names the session's own vendor
// POST: on success the backend's old/new values are returned for the
// confirmation message
func ExecuteUpdatePrice(ctx context.Context, input UpdatePriceInput, deps UpdatePriceDeps) (vendor.PriceUpdate, error) {
	res, err := deps.API.UpdatePrice(ctx, input.VendorID, input.ProductID, input.Price)
	if err != nil {
		return vendor.PriceUpdate{}, err
	}
	slog.Info("edit_event", "event", "price_updated",
		"vendor_id", input.VendorID, "product_id", input.ProductID,
		"old", res.OldPrice, "new", res.NewPrice)
	return res, nil
}

// UpdateStockInput carries one staged stock value for one enrollment row.
type UpdateStockInput struct {
	VendorID  int64
	ProductID int64
	Stock     int
}

// UpdateStockDeps holds dependencies for UpdateStock.
type UpdateStockDeps struct {
	API StockAPI
}

// ExecuteUpdateStock submits a single-field stock update.
// PRE: a session is active and input names the session's own vendor
// POST: on success the backend's old/new values are returned
func ExecuteUpdateStock(ctx context.Context, input UpdateStockInput, deps UpdateStockDeps) (vendor.StockUpdate, error) {
	res, err := deps.API.UpdateStock(ctx, input.VendorID, input.ProductID, input.Stock)
	if err != nil {
		return vendor.StockUpdate{}, err
	}
	slog.Info("edit_event", "event", "stock_updated",
		"vendor_id", input.VendorID, "product_id", input.ProductID,
		"old", res.OldStock, "new", res.NewStock)
	return res, nil
}
