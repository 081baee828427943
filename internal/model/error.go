package model

// Standard error codes
const (
	ErrCodeMalformedCoupon = "MALFORMED_COUPON"
	ErrCodeCategoryOverlap = "CATEGORY_OVERLAP"
	ErrCodeInvalidDocument = "INVALID_DOCUMENT"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError carrying the same code, so that
// errors built with a detailed message still match the sentinel values below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMalformedCoupon = NewDomainError(ErrCodeMalformedCoupon, "Invalid coupon configuration")
	ErrCategoryOverlap = NewDomainError(ErrCodeCategoryOverlap, "Category overlap in coupons")
	ErrInvalidDocument = NewDomainError(ErrCodeInvalidDocument, "Input document is not well formed")
	ErrNilRequest      = NewDomainError(ErrCodeInvalidRequest, "Evaluation request is nil")
)
