package projections

import (
	"context"
	"log/slog"

	"vendorportal/internal/application/viewstate"
	"vendorportal/internal/domain/catalog"
	"vendorportal/internal/domain/vendor"
)

// DashboardAPI defines the API surface needed by the dashboard projection.
type DashboardAPI interface {
	VendorProducts(ctx context.Context, vendorID int64) ([]vendor.Product, error)
	ListProducts(ctx context.Context, categoryID string) ([]catalog.Product, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	VendorID int64
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	API   DashboardAPI
	Cache *viewstate.Cache[vendor.Product]
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Products   []vendor.Product  // enrollments with the vendor's price and stock
	Candidates []catalog.Product // catalog products the vendor is not enrolled in
	Stale      bool              // Products is the previous snapshot, not fresh data
}

// QueryGetDashboard fetches the vendor's enrollments and the enrollment
// candidates. The enrollment list is authoritative: on fetch failure the last
// snapshot is returned marked stale alongside the error. The candidate list
// is an extra; when the catalog fetch fails the dashboard still renders, with
// no candidates offered.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	result := DashboardResult{}

	seq := deps.Cache.Begin()
	products, err := deps.API.VendorProducts(ctx, query.VendorID)
	if err != nil {
		result.Products = deps.Cache.Items()
		result.Stale = true
		return result, err
	}
	deps.Cache.Replace(seq, products)
	result.Products = products

	all, err := deps.API.ListProducts(ctx, "")
	if err != nil {
		slog.Warn("dashboard_event", "event", "candidate_fetch_failed", "error", err)
		return result, nil
	}
	enrolled := catalog.SetOf(vendor.ProductIDs(products))
	result.Candidates = catalog.Candidates(all, enrolled)
	return result, nil
}
