package web

import (
	"fmt"
	"net/http"
	"strconv"

	"vendorportal/internal/adapters/http/middleware"
	"vendorportal/internal/application/orchestrators"
	"vendorportal/internal/application/projections"
	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/vendor"
)

// dashboardPage carries the dashboard screen data. EditField and
// EditProductID name the single cell currently showing an edit form; the rest
// of the table stays read-only.
type dashboardPage struct {
	Title string
	Flash flash

	Products   []vendor.Product
	Candidates []catalog.Product
	Stale      bool

	EditField     string // "price" or "stock", empty when nothing is being edited
	EditProductID int64
}

// handleDashboard handles GET for /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetDashboard(r.Context(),
		projections.GetDashboardQuery{VendorID: sess.VendorID},
		projections.GetDashboardDeps{API: api, Cache: dashboardCache})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
	}

	page := dashboardPage{
		Title:      "Products",
		Flash:      flashFromQuery(r),
		Products:   result.Products,
		Candidates: result.Candidates,
		Stale:      result.Stale,
	}
	if err != nil && page.Flash.Error == "" {
		page.Flash.Error = err.Error()
	}

	if field := r.URL.Query().Get("edit"); field == "price" || field == "stock" {
		if id, perr := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64); perr == nil {
			page.EditField = field
			page.EditProductID = id
		}
	}

	renderTemplate(w, r, "dashboard.html", page)
}

// handleUpdatePrice handles POST for /dashboard/price
func handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil {
		redirectWithError(w, r, "/dashboard", fmt.Errorf("enter a valid price"))
		return
	}

	res, err := orchestrators.ExecuteUpdatePrice(r.Context(), orchestrators.UpdatePriceInput{
		VendorID:  sess.VendorID,
		ProductID: productID,
		Price:     price,
	}, orchestrators.UpdatePriceDeps{API: api})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
		redirectWithError(w, r, "/dashboard", err)
		return
	}
	redirectWithMessage(w, r, "/dashboard", res.Message())
}

// handleUpdateStock handles POST for /dashboard/stock
func handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	stock, err := strconv.Atoi(r.PostFormValue("stock"))
	if err != nil {
		redirectWithError(w, r, "/dashboard", fmt.Errorf("enter a valid stock count"))
		return
	}

	res, err := orchestrators.ExecuteUpdateStock(r.Context(), orchestrators.UpdateStockInput{
		VendorID:  sess.VendorID,
		ProductID: productID,
		Stock:     stock,
	}, orchestrators.UpdateStockDeps{API: api})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
		redirectWithError(w, r, "/dashboard", err)
		return
	}
	redirectWithMessage(w, r, "/dashboard", res.Message())
}

// handleEnroll handles POST for /dashboard/enroll
func handleEnroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	productID, _ := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	price, perr := strconv.ParseFloat(r.PostFormValue("price"), 64)
	stock, serr := strconv.Atoi(r.PostFormValue("stock"))
	if perr != nil || serr != nil {
		redirectWithError(w, r, "/dashboard", fmt.Errorf("enter a starting price and stock"))
		return
	}

	err := orchestrators.ExecuteEnroll(r.Context(), orchestrators.EnrollInput{
		VendorID:  sess.VendorID,
		ProductID: productID,
		Price:     price,
		Stock:     stock,
	}, orchestrators.EnrollDeps{API: api})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
		redirectWithError(w, r, "/dashboard", err)
		return
	}
	redirectWithMessage(w, r, "/dashboard", "Enrolled in product successfully")
}

// confirmUnenrollPage carries the unenroll confirmation screen data.
type confirmUnenrollPage struct {
	Title string
	Flash flash

	ProductID   int64
	ProductName string
}

// handleUnenroll handles GET (confirmation screen) and POST for
// /dashboard/unenroll. The delete call is only issued by the POST, which the
// confirmation screen's form submits.
func handleUnenroll(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	switch r.Method {
	case "GET":
		productID, err := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64)
		if err != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "confirm_unenroll.html", confirmUnenrollPage{
			Title:       "Unenroll",
			ProductID:   productID,
			ProductName: r.URL.Query().Get("name"),
		})

	case "POST":
		productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		err = orchestrators.ExecuteUnenroll(r.Context(), orchestrators.UnenrollInput{
			VendorID:  sess.VendorID,
			ProductID: productID,
			Confirmed: r.PostFormValue("confirmed") == "true",
		}, orchestrators.UnenrollDeps{API: api})
		if err != nil {
			if redirectUnauthorized(w, r, err) {
				return
			}
			redirectWithError(w, r, "/dashboard", err)
			return
		}
		name := r.PostFormValue("name")
		redirectWithMessage(w, r, "/dashboard", fmt.Sprintf("Unenrolled from %q successfully", name))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
