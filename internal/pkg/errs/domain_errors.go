package errs

import "errors"

// Domain-specific sentinel errors for usecase layers
var (
	// Promotion errors
	ErrPromotionNotFound     = errors.New("promotion not found")
	ErrDuplicateCode         = errors.New("promotion code already exists")
	ErrInvalidDiscountSpec   = errors.New("exactly one of percent or fixed amount must be set")
	ErrInvalidValidityWindow = errors.New("end date must be after start date")
	ErrInvalidUsageLimit     = errors.New("usage limit must be at least 1")
	ErrInvalidMinOrderAmount = errors.New("minimum order amount cannot be negative")
	ErrInvalidOrderAmount    = errors.New("order amount must be positive")

	// Invoice errors
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrDuplicateInvoiceNumber  = errors.New("invoice number already exists")
	ErrPromotionAlreadyApplied = errors.New("invoice already has a promotion applied")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
