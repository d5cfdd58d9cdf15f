package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// EnrollmentAPI defines the API surface needed by Enroll and Unenroll.
type EnrollmentAPI interface {
	Enroll(ctx context.Context, vendorID, productID int64, price float64, stock int) error
	Unenroll(ctx context.Context, vendorID, productID int64) error
}

// EnrollInput carries the enrollment submission.
type EnrollInput struct {
	VendorID  int64
	ProductID int64
	Price     float64
	Stock     int
}

// EnrollDeps holds dependencies for Enroll.
type EnrollDeps struct {
	API EnrollmentAPI
}

var ErrNoProductSelected = errors.New("select a product to enroll in")

// ExecuteEnroll enrolls the vendor in a catalog product. The enrolled set
// is never appended locally; the caller refetches, so the screen only ever
// shows state the backend has confirmed.
// PRE: input.ProductID came from the candidate list
// POST: on success the enrollment exists on the backend
func ExecuteEnroll(ctx context.Context, input EnrollInput, deps EnrollDeps) error {
	if input.ProductID == 0 {
		return ErrNoProductSelected
	}
	if err := deps.API.Enroll(ctx, input.VendorID, input.ProductID, input.Price, input.Stock); err != nil {
		return err
	}
	slog.Info("enroll_event", "event", "enrolled", "vendor_id", input.VendorID, "product_id", input.ProductID)
	return nil
}

// UnenrollInput carries the unenrollment request. Confirmed records that
// the vendor completed the destructive-action confirmation step.
type UnenrollInput struct {
	VendorID  int64
	ProductID int64
	Confirmed bool
}

// UnenrollDeps holds dependencies for Unenroll.
type UnenrollDeps struct {
	API EnrollmentAPI
}

var ErrNotConfirmed = errors.New("unenrollment requires confirmation")

// ExecuteUnenroll deletes the vendor's enrollment. Without confirmation no
// delete call is issued at all.
// PRE: none
// POST: on success the enrollment no longer exists on the backend
func ExecuteUnenroll(ctx context.Context, input UnenrollInput, deps UnenrollDeps) error {
	if !input.Confirmed {
		return ErrNotConfirmed
	}
	if err := deps.API.Unenroll(ctx, input.VendorID, input.ProductID); err != nil {
		return err
	}
	slog.Info("enroll_event", "event", "unenrolled", "vendor_id", input.VendorID, "product_id", input.ProductID)
	return nil
}
