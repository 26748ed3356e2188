package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned across the booking, order, payment and webhook
// pipelines.
const (
	CodeInvalidRequest        = "invalidRequest"
	CodeResourceNotFound      = "resourceNotFound"
	CodePackageNotFound       = "packageNotFound"
	CodeServiceNotFound       = "serviceNotFound"
	CodeOrderNotFound         = "orderNotFound"
	CodeCapacityExceeded      = "capacityExceeded"
	CodeOutsideWorkingHours   = "outsideWorkingHours"
	CodeBookingConflict       = "bookingConflict"
	CodeDiscountInvalid       = "discountInvalid"
	CodeDiscountFirstTimeOnly = "discountFirstTimeOnly"
	CodePaymentAlreadyExists  = "paymentAlreadyExists"
	CodePaymentCreationFailed = "paymentCreationFailed"
	CodeInvalidSignature      = "invalidSignature"
	CodeBookingFailed         = "bookingFailed"
	CodeOrderFailed           = "orderFailed"
	CodeInternalError         = "internalError"
)

// FieldError points a validation message at a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a business-rule failure with a machine-readable code and,
// for validation failures, per-field messages.
type Error struct {
	Code    string       `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewValidationError(message string, fields ...FieldError) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message, Fields: fields}
}

// AsError unwraps a booking Error from err, if present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code string) int {
	switch code {
	case CodeResourceNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeInvalidSignature:
		return http.StatusUnauthorized
	case CodeInvalidRequest, CodePackageNotFound, CodeServiceNotFound,
		CodeCapacityExceeded, CodeOutsideWorkingHours, CodeBookingConflict,
		CodeDiscountInvalid, CodeDiscountFirstTimeOnly:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
