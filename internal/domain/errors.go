package domain

import "errors"

var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCardNumber = errors.New("invalid card number format")

	// Ingestion errors
	ErrEmptyBatch = errors.New("transaction batch is empty")
)
