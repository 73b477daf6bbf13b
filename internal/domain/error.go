package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound               = errors.New("entity not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrPackageNotFound        = errors.New("membership package not found")
	ErrMissingPackageID       = errors.New("missing package id")
	ErrMissingOrderID         = errors.New("missing order id")
	ErrPaymentNotFound        = errors.New("no pending payment for order")
	ErrActiveMembershipExists = errors.New("user already has an active membership")
	ErrNoActiveMembership     = errors.New("no active membership")
	ErrOrderCreationFailed    = errors.New("provider order creation failed")
	ErrCaptureFailed          = errors.New("provider capture failed")
	ErrUnauthorized           = errors.New("unauthorized")

	// Storage-layer errors surfaced through repositories
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid transaction execution context")
)
