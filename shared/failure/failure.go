package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its message so callers can branch on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindInvalidDate
	KindNotFound
	KindGuestInactive
	KindRoomUnavailable
	KindBookingConflict
	KindInvalidAmount
	KindDuplicateRoom
	KindDuplicateGuest
	KindInUse
	KindTransientStoreFailure
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindInvalidInput:          "InvalidInput",
	KindInvalidDate:           "InvalidDate",
	KindNotFound:              "NotFound",
	KindGuestInactive:         "GuestInactive",
	KindRoomUnavailable:       "RoomUnavailable",
	KindBookingConflict:       "BookingConflict",
	KindInvalidAmount:         "InvalidAmount",
	KindDuplicateRoom:         "DuplicateRoom",
	KindDuplicateGuest:        "DuplicateGuest",
	KindInUse:                 "InUse",
	KindTransientStoreFailure: "TransientStoreFailure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindUnknown]
}

// Failure is a business-rule or infrastructure error with a kind, the offending field and an
// HTTP-style status code for outer layers.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

var InvalidDateRange = &Failure{Code: http.StatusBadRequest, Kind: KindInvalidDate, Field: "check_out", Message: "check-out date must be after check-in date"}
var PastCheckIn = &Failure{Code: http.StatusBadRequest, Kind: KindInvalidDate, Field: "check_in", Message: "check-in date cannot be in the past"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Is reports whether target is a Failure of the same kind.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return other.Kind == e.Kind
}

func newFailure(code int, kind Kind, field, msg string) error {
	return &Failure{
		Code:    code,
		Kind:    kind,
		Field:   field,
		Message: msg,
	}
}

// InvalidInput returns a Failure for a request that did not pass struct validation.
func InvalidInput(field, msg string) error {
	return newFailure(http.StatusBadRequest, KindInvalidInput, field, msg)
}

// InvalidDate returns a Failure for check-in/check-out dates that break the booking rules.
func InvalidDate(field, msg string) error {
	return newFailure(http.StatusBadRequest, KindInvalidDate, field, msg)
}

// NotFound returns a Failure for an unknown room, guest or booking.
func NotFound(field, msg string) error {
	return newFailure(http.StatusNotFound, KindNotFound, field, msg)
}

func GuestInactive(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, KindGuestInactive, "guest_id", msg)
}

func RoomUnavailable(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, KindRoomUnavailable, "room_id", msg)
}

// BookingConflict returns a Failure for a stay overlapping an existing non-cancelled booking.
func BookingConflict(msg string) error {
	return newFailure(http.StatusConflict, KindBookingConflict, "check_in", msg)
}

func InvalidAmount(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, KindInvalidAmount, "total_amount", msg)
}

func DuplicateRoom(msg string) error {
	return newFailure(http.StatusConflict, KindDuplicateRoom, "room_number", msg)
}

func DuplicateGuest(field, msg string) error {
	return newFailure(http.StatusConflict, KindDuplicateGuest, field, msg)
}

// InUse returns a Failure for a delete that is blocked by dependent bookings.
func InUse(field, msg string) error {
	return newFailure(http.StatusConflict, KindInUse, field, msg)
}

// TransientStoreFailure returns a Failure for a store error that survived every retry.
func TransientStoreFailure(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusServiceUnavailable, KindTransientStoreFailure, "", err.Error())
}

// GetCode returns the status code of an error, or 500 for errors that are not failures.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the kind of a failure anywhere in the error chain.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsFailure reports whether err carries a Failure, i.e. is a terminal business outcome.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}
