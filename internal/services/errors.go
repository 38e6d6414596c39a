package services

// Service errors
var (
	ErrNoEligibleCards = &ServiceError{Message: "no eligible cards to draw from"}
	ErrAlreadyRolling  = &ServiceError{Message: "a draw is already in progress"}
	ErrNoNamesGiven    = &ServiceError{Message: "no card names given"}
	ErrTooManyNames    = &ServiceError{Message: "at most 200 cards can be added at once"}
	ErrEmptyCardName   = &ServiceError{Message: "card name must not be empty"}
	ErrNoTablesGiven   = &ServiceError{Message: "no tables specified"}
	ErrCardNotFound    = &ServiceError{Message: "card not found"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
