package model

import "errors"

// ErrorResponse is the error body returned to clients.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorKind classifies domain errors so the HTTP boundary can pick a status.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDuplicate
	KindUpstream
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeEmptyOrder         = "EMPTY_ORDER"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeAlreadyReviewed    = "ALREADY_REVIEWED"
	ErrCodeCannotDeleteAdmin  = "CANNOT_DELETE_ADMIN"
	ErrCodeDuplicate          = "DUPLICATE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMissingToken       = "MISSING_TOKEN"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeUpstream           = "UPSTREAM_FAILURE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Kind    ErrorKind
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// NewValidationError creates a validation error with a caller-supplied message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(KindValidation, ErrCodeValidation, message)
}

// AsDomainError unwraps err into a DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrEmptyOrder         = NewDomainError(KindValidation, ErrCodeEmptyOrder, "Cart is empty")
	ErrInvalidQuantity    = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidRating      = NewDomainError(KindValidation, ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrOrderNotFound      = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order Not Found")
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product Not Found")
	ErrUserNotFound       = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User Not Found")
	ErrAlreadyReviewed    = NewDomainError(KindValidation, ErrCodeAlreadyReviewed, "You already submitted a review")
	ErrCannotDeleteAdmin  = NewDomainError(KindValidation, ErrCodeCannotDeleteAdmin, "Cannot Delete Admin User")
	ErrDuplicateEmail     = NewDomainError(KindDuplicate, ErrCodeDuplicate, "Email is already registered")
	ErrDuplicateProduct   = NewDomainError(KindDuplicate, ErrCodeDuplicate, "Product name or slug already exists")
	ErrInvalidCredentials = NewDomainError(KindAuthentication, ErrCodeInvalidCredentials, "Invalid email or password")
	ErrMissingToken       = NewDomainError(KindAuthentication, ErrCodeMissingToken, "No Token")
	ErrInvalidToken       = NewDomainError(KindAuthentication, ErrCodeInvalidToken, "Invalid Token")
	ErrAdminRequired      = NewDomainError(KindAuthorization, ErrCodeForbidden, "Invalid Admin Token")
	ErrUploadFailed       = NewDomainError(KindUpstream, ErrCodeUpstream, "Upload failed")
)
