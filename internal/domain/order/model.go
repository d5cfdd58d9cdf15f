package order

import (
	"fmt"

	"vendorportal/internal/domain/vendor"
)

// Order is a placed order as the backend reports it. The backend allocates
// each order to a vendor; the portal only displays the outcome.
type Order struct {
	OrderID             int64   `json:"orderId"`
	ProductName         string  `json:"productName"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	TotalPrice          float64 `json:"totalPrice"`
	AllocatedVendorName string  `json:"allocatedVendorName"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
}

// Confirmation renders the transient message shown after an order is placed.
func (o Order) Confirmation() string {
	return fmt.Sprintf("Order #%d placed — allocated to %s at %s/unit (Total: %s)",
		o.OrderID, o.AllocatedVendorName, vendor.Money(o.Price), vendor.Money(o.TotalPrice))
}
