package errors

import "errors"

// Domain errors returned by services. Handlers map these to HTTP statuses;
// batch jobs record them per item.
var ErrNotFound = errors.New("record not found")
var ErrValidation = errors.New("validation failed")
var ErrInvalidSeat = errors.New("seat number is out of range")
var ErrSeatUnavailable = errors.New("seat is already taken")
var ErrBookingExpired = errors.New("booking has expired")
var ErrStaleTicketState = errors.New("ticket is not in the expected state")
var ErrNoFuelPrice = errors.New("no fuel price configured")
var ErrDuplicateTrip = errors.New("trip already exists for this route and date")
