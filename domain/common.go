package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageInternalServerError  = "Internal server error"
	MessageUnauthorized         = "Unauthorized"
	MessageUnauthenticated      = "User must be authenticated"
	MessageInvoiceIDRequired    = "invoiceId is required"

	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvoiceIDRequired = errors.New("invoiceId is required")
	ErrTokenNotFound     = errors.New("failed to token not found")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// CallableRequest is the request envelope of the callable protocol.
type CallableRequest[T any] struct {
	Data T `json:"data"`
}
