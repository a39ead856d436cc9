package brcode

import "errors"

// Sentinel errors for encode and render failures.
var (
	// ErrFieldTooLong indicates an EMV field value longer than 99
	// characters, which cannot be expressed in the 2-digit length prefix.
	ErrFieldTooLong = errors.New("brcode: field value exceeds 99 characters")

	// ErrInvalidAmount indicates a negative charge amount.
	ErrInvalidAmount = errors.New("brcode: negative amount")

	// ErrRenderFailure indicates the QR image could not be generated.
	ErrRenderFailure = errors.New("brcode: qr render failed")
)
