package projections

import (
	"context"
	"log/slog"

	"vendorportal/internal/application/viewstate"
	"vendorportal/internal/domain/order"
	"vendorportal/internal/domain/vendor"
)

// OrdersAPI defines the API surface needed by the orders projection.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	VendorProducts(ctx context.Context, vendorID int64) ([]vendor.Product, error)
}

// GetOrdersQuery carries input for the orders projection.
type GetOrdersQuery struct {
	VendorID int64
}

// GetOrdersDeps holds dependencies for the orders projection.
type GetOrdersDeps struct {
	API   OrdersAPI
	Cache *viewstate.Cache[order.Order]
}

// OrdersResult carries the output of the orders projection.
type OrdersResult struct {
	Orders       []order.Order
	FormProducts []vendor.Product // options for the place-order dropdown
	Stale        bool
}

// QueryGetOrders fetches the order history and the products offered in the
// place-order form. The history is authoritative; the form options are an
// extra, so their fetch failing still renders the list.
func QueryGetOrders(ctx context.Context, query GetOrdersQuery, deps GetOrdersDeps) (OrdersResult, error) {
	result := OrdersResult{}

	seq := deps.Cache.Begin()
	orders, err := deps.API.ListOrders(ctx)
	if err != nil {
		result.Orders = deps.Cache.Items()
		result.Stale = true
		return result, err
	}
	deps.Cache.Replace(seq, orders)
	result.Orders = orders

	products, err := deps.API.VendorProducts(ctx, query.VendorID)
	if err != nil {
		slog.Warn("orders_event", "event", "form_products_fetch_failed", "error", err)
		return result, nil
	}
	result.FormProducts = products
	return result, nil
}
