// Package errors provides custom error types for cart-related operations.
package errors

import "errors"

// ErrValidation is returned when product data handed to the cart is malformed.
var ErrValidation = errors.New("invalid product data")

// ErrEmptyCart is returned when a checkout is attempted with no items.
var ErrEmptyCart = errors.New("cart is empty")

var (
	// ErrPersistence wraps failures to save or load the cart.
	ErrPersistence = errors.New("cart persistence failed")
	// ErrMalformedCart is returned when the saved cart cannot be decoded.
	ErrMalformedCart = errors.New("stored cart is malformed")
)

var (
	// ErrKeyNotFound is returned by a store when nothing is saved under the key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStoreClosed is returned by a store used after Close.
	ErrStoreClosed = errors.New("store is closed")
)
