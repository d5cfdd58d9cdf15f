package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"unicode"
)

// RegisterAPI defines the API surface needed by Register.
type RegisterAPI interface {
	Register(ctx context.Context, username, password, vendorName string) error
}

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	Username        string
	VendorName      string
	Password        string
	ConfirmPassword string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	API RegisterAPI
}

var (
	ErrMissingRegistration = errors.New("username, vendor name and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrWeakPassword        = errors.New("password must be at least 8 characters with at least one uppercase letter, one lowercase letter, and one number")
)

// ExecuteRegister validates the form and submits the registration. The
// backend applies its own validation of record; these checks only mirror
// the form's constraints so a vendor gets feedback before a round trip.
// PRE: none
// POST: on success the account exists; the vendor still logs in separately
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) error {
	if input.Username == "" || input.VendorName == "" || input.Password == "" {
		return ErrMissingRegistration
	}
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !strongEnough(input.Password) {
		return ErrWeakPassword
	}

	if err := deps.API.Register(ctx, input.Username, input.Password, input.VendorName); err != nil {
		slog.Info("auth_event", "event", "register_failed", "username", input.Username)
		return err
	}

	slog.Info("auth_event", "event", "register_success", "username", input.Username)
	return nil
}

func strongEnough(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
