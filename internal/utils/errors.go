package utils

import "errors"

// Common application errors used across services. Handlers translate these
// into HTTP status codes; anything else becomes a generic 500.
var (
	ErrMissingFields      = errors.New("MISSING_REQUIRED_FIELDS")
	ErrInvalidCategory    = errors.New("INVALID_CATEGORY")
	ErrInvalidSubcategory = errors.New("INVALID_SUBCATEGORY")
	ErrInvalidCondition   = errors.New("INVALID_CONDITION")
	ErrAdNotFound         = errors.New("AD_NOT_FOUND")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
	ErrNameRequired       = errors.New("NAME_REQUIRED")
	ErrNameTooShort       = errors.New("NAME_TOO_SHORT")
	ErrNameTooLong        = errors.New("NAME_TOO_LONG")
)
