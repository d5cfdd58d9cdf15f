package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"vendorportal/internal/domain/order"
)

// OrderAPI defines the API surface needed by PlaceOrder.
type OrderAPI interface {
	CreateOrder(ctx context.Context, productID int64, quantity int) (order.Order, error)
}

// PlaceOrderInput carries the order submission.
type PlaceOrderInput struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderDeps holds dependencies for PlaceOrder.
type PlaceOrderDeps struct {
	API OrderAPI
}

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ExecutePlaceOrder places an order and returns the backend's allocation
// result for the confirmation message.
// PRE: input.ProductID came from the product dropdown
// POST: on success the order exists; allocation is entirely the backend's
func ExecutePlaceOrder(ctx context.Context, input PlaceOrderInput, deps PlaceOrderDeps) (order.Order, error) {
	if input.ProductID == 0 {
		return order.Order{}, ErrNoProductSelected
	}
	if input.Quantity < 1 {
		return order.Order{}, ErrInvalidQuantity
	}

	placed, err := deps.API.CreateOrder(ctx, input.ProductID, input.Quantity)
	if err != nil {
		return order.Order{}, err
	}

	slog.Info("order_event", "event", "order_placed",
		"order_id", placed.OrderID, "product_id", input.ProductID,
		"quantity", input.Quantity, "allocated_vendor", placed.AllocatedVendorName)
	return placed, nil
}
