package domain

import "errors"

var (
	ErrInvalidID         = errors.New("ID cannot be blank or less than zero.")
	ErrValidation        = errors.New("validation failed")
	ErrNoAvailableDriver = errors.New("no drivers are available")
	ErrAggregation       = errors.New("cannot aggregate trips")
	ErrTripInProgress    = errors.New("trip is still in progress")
	ErrTripCompleted     = errors.New("trip has already been completed")
	ErrNoTripHistory     = errors.New("cannot derive trip id: no trips loaded")

	ErrDriverNotFound    = errors.New("driver not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrTripNotFound      = errors.New("trip not found")
)
