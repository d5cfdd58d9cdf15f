package web

import (
	"net/http"
	"strconv"

	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/application/orchestrators"
	"vendorportal/internal/application/projections"
	"vendorportal/internal/domain/order"
	"vendorportal/internal/domain/vendor"
)

// ordersPage carries the orders screen data.
type ordersPage struct {
	Title string
	Flash flash

	Orders       []order.Order
	FormProducts []vendor.Product
	Stale        bool
}

// handleOrders handles GET (history plus place-order form) and POST (place an
// order) for /orders.
func handleOrders(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	switch r.Method {
	case "GET":
		result, err := projections.QueryGetOrders(r.Context(),
			projections.GetOrdersQuery{VendorID: sess.VendorID},
			projections.GetOrdersDeps{API: api, Cache: ordersCache})
		if err != nil {
			if redirectUnauthorized(w, r, err) {
				return
			}
		}

		page := ordersPage{
			Title:        "Orders",
			Flash:        flashFromQuery(r),
			Orders:       result.Orders,
			FormProducts: result.FormProducts,
			Stale:        result.Stale,
		}
		if err != nil && page.Flash.Error == "" {
			page.Flash.Error = err.Error()
		}
		renderTemplate(w, r, "orders.html", page)

	case "POST":
		productID, _ := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
		quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
		if err != nil {
			redirectWithError(w, r, "/orders", orchestrators.ErrInvalidQuantity)
			return
		}

		placed, err := orchestrators.ExecutePlaceOrder(r.Context(), orchestrators.PlaceOrderInput{
			ProductID: productID,
			Quantity:  quantity,
		}, orchestrators.PlaceOrderDeps{API: api})
		if err != nil {
			if redirectUnauthorized(w, r, err) {
				return
			}
			redirectWithError(w, r, "/orders", err)
			return
		}
		redirectWithMessage(w, r, "/orders", placed.Confirmation())

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
