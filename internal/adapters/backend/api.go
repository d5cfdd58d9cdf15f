package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/order"
	"vendorportal/internal/domain/vendor"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	return res.Token, err
}

// Register creates a new vendor account. The vendor logs in separately.
func (c *Client) Register(ctx context.Context, username, password, vendorName string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username":   username,
		"password":   password,
		"vendorName": vendorName,
	}, nil)
}

// ListProducts returns the shared catalog, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	path := "/products"
	if categoryID != "" {
		path += "?categoryId=" + url.QueryEscape(categoryID)
	}
	var products []catalog.Product
	err := c.do(ctx, http.MethodGet, path, nil, &products)
	return products, err
}

// ListCategories returns the catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &categories)
	return categories, err
}

// CreateProduct adds a product to the shared catalog.
func (c *Client) CreateProduct(ctx context.Context, input catalog.ProductInput) error {
	return c.do(ctx, http.MethodPost, "/products", input, nil)
}

// UpdateProduct replaces a catalog product's fields.
func (c *Client) UpdateProduct(ctx context.Context, productID int64, input catalog.ProductInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", productID), input, nil)
}

// DeleteProduct removes a product from the shared catalog.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil, nil)
}

// VendorProducts returns the products the vendor is enrolled in, with the
// vendor's price and stock.
func (c *Client) VendorProducts(ctx context.Context, vendorID int64) ([]vendor.Product, error) {
	var products []vendor.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vendors/%d/products", vendorID), nil, &products)
	return products, err
}

// UpdatePrice submits a single-field price update for one enrollment.
func (c *Client) UpdatePrice(ctx context.Context, vendorID, productID int64, price float64) (vendor.PriceUpdate, error) {
	var res vendor.PriceUpdate
	err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/vendors/%d/products/%d/price", vendorID, productID),
		map[string]float64{"price": price}, &res)
	return res, err
}

// UpdateStock submits a single-field stock update for one enrollment.
func (c *Client) UpdateStock(ctx context.Context, vendorID, productID int64, stock int) (vendor.StockUpdate, error) {
	var res vendor.StockUpdate
	err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/vendors/%d/products/%d/stock", vendorID, productID),
		map[string]int{"stock": stock}, &res)
	return res, err
}

// Enroll creates an enrollment for the vendor at the given price and stock.
func (c *Client) Enroll(ctx context.Context, vendorID, productID int64, price float64, stock int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/vendors/%d/products", vendorID), map[string]any{
		"productId": productID,
		"price":     price,
		"stock":     stock,
	}, nil)
}

// Unenroll deletes the vendor's enrollment for the given product.
func (c *Client) Unenroll(ctx context.Context, vendorID, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vendors/%d/products/%d", vendorID, productID), nil, nil)
}

// CreateOrder places an order; the backend picks the allocated vendor.
func (c *Client) CreateOrder(ctx context.Context, productID int64, quantity int) (order.Order, error) {
	var res order.Order
	err := c.do(ctx, http.MethodPost, "/orders", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}, &res)
	return res, err
}

// ListOrders returns the order history.
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	err := c.do(ctx, http.MethodGet, "/orders", nil, &orders)
	return orders, err
}
