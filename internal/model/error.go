package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidQuery       = "INVALID_QUERY"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidStars       = "INVALID_STARS"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeDishNotFound       = "DISH_NOT_FOUND"
	ErrCodeEmptyOrder         = "EMPTY_ORDER"
	ErrCodeAlreadyRated       = "ALREADY_RATED"
	ErrCodeEmailRegistered    = "EMAIL_REGISTERED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodePickupInPast       = "PICKUP_IN_PAST"
	ErrCodeInvalidRole        = "INVALID_ROLE"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
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
	ErrInvalidStars       = NewDomainError(ErrCodeInvalidStars, "Stars must be an integer between 1 and 5")
	ErrMissingTitle       = NewDomainError(ErrCodeMissingField, "Dish title is required")
	ErrMissingDescription = NewDomainError(ErrCodeMissingField, "Dish description is required")
	ErrInvalidPrice       = NewDomainError(ErrCodeInvalidPrice, "Dish needs a positive price or barter")
	ErrDishNotFound       = NewDomainError(ErrCodeDishNotFound, "Dish not found")
	ErrEmptyOrder         = NewDomainError(ErrCodeEmptyOrder, "Empty order")
	ErrAlreadyRated       = NewDomainError(ErrCodeAlreadyRated, "Already rated")
	ErrEmailRegistered    = NewDomainError(ErrCodeEmailRegistered, "Email already registered")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrPickupInPast       = NewDomainError(ErrCodePickupInPast, "Pickup time must be in the future")
	ErrMissingCredentials = NewDomainError(ErrCodeMissingField, "Email and password are required")
	ErrMissingDishID      = NewDomainError(ErrCodeMissingField, "dish_id is required")
	ErrInvalidRole        = NewDomainError(ErrCodeInvalidRole, "Unknown role")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrInvalidToken       = NewDomainError(ErrCodeUnauthorised, "Invalid token")
	ErrNotAuthenticated   = NewDomainError(ErrCodeUnauthorised, "Not authenticated")
)
