package web

import (
	"net/http"
	"strconv"

	"vendorportal/internal/application/orchestrators"
	"vendorportal/internal/application/projections"
	"vendorportal/internal/domain/catalog"
)

// catalogPage carries the shared catalog screen data. EditProduct is non-nil
// when a product row is open in the edit form; Creating shows the empty form.
type catalogPage struct {
	Title string
	Flash flash

	Products   []catalog.Product
	Categories []catalog.Category
	CategoryID string
	Stale      bool

	Creating    bool
	EditProduct *catalog.Product
}

// handleCatalog handles GET for /catalog
func handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	categoryID := r.URL.Query().Get("category")
	result, err := projections.QueryGetCatalog(r.Context(),
		projections.GetCatalogQuery{CategoryID: categoryID},
		projections.GetCatalogDeps{API: api, Cache: catalogCache})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
	}

	page := catalogPage{
		Title:      "Catalog",
		Flash:      flashFromQuery(r),
		Products:   result.Products,
		Categories: result.Categories,
		CategoryID: categoryID,
		Stale:      result.Stale,
		Creating:   r.URL.Query().Get("new") == "1",
	}
	if err != nil && page.Flash.Error == "" {
		page.Flash.Error = err.Error()
	}

	if id, perr := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); perr == nil {
		for i := range page.Products {
			if page.Products[i].ID == id {
				page.EditProduct = &page.Products[i]
				break
			}
		}
	}

	renderTemplate(w, r, "catalog.html", page)
}

// handleSaveProduct handles POST for /catalog/save, covering both create and
// update. An empty or missing productId means create.
func handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveProductInput{
		Name:        r.PostFormValue("name"),
		ProductCode: r.PostFormValue("productCode"),
		Description: r.PostFormValue("description"),
	}
	if v := r.PostFormValue("productId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		input.ProductID = id
	}
	if v := r.PostFormValue("categoryId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			input.CategoryID = &id
		}
	}

	msg, err := orchestrators.ExecuteSaveProduct(r.Context(), input,
		orchestrators.SaveProductDeps{API: api})
	if err != nil {
		if redirectUnauthorized(w, r, err) {
			return
		}
		redirectWithError(w, r, "/catalog", err)
		return
	}
	redirectWithMessage(w, r, "/catalog", msg)
}

// confirmDeletePage carries the product delete confirmation screen data.
type confirmDeletePage struct {
	Title string
	Flash flash

	ProductID   int64
	ProductName string
}

// handleDeleteProduct handles GET (confirmation screen) and POST for
// /catalog/delete.
func handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		productID, err := strconv.ParseInt(r.URL.Query().Get("product"), 10, 64)
		if err != nil {
			http.Redirect(w, r, "/catalog", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "confirm_delete_product.html", confirmDeletePage{
			Title:       "Delete product",
			ProductID:   productID,
			ProductName: r.URL.Query().Get("name"),
		})

	case "POST":
		productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		msg, err := orchestrators.ExecuteDeleteProduct(r.Context(), orchestrators.DeleteProductInput{
			ProductID: productID,
			Name:      r.PostFormValue("name"),
			Confirmed: r.PostFormValue("confirmed") == "true",
		}, orchestrators.DeleteProductDeps{API: api})
		if err != nil {
			if redirectUnauthorized(w, r, err) {
				return
			}
			redirectWithError(w, r, "/catalog", err)
			return
		}
		redirectWithMessage(w, r, "/catalog", msg)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
