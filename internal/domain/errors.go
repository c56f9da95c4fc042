package domain

import "errors"

// Error classes. Services return these; only handlers translate them to
// HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbiddenRole = errors.New("role not allowed")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ValidationError rejects malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BusinessRuleError rejects a well-formed request that violates a domain
// rule (pool closed, below minimum, contract settled).
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string { return e.Msg }

func BusinessRule(msg string) error { return &BusinessRuleError{Msg: msg} }

func IsBusinessRule(err error) bool {
	var be *BusinessRuleError
	return errors.As(err, &be)
}

// TransientConflictError marks a storage-level write conflict that is safe
// to retry with the same idempotency key. The storage layer is the only
// place allowed to construct it from driver-specific error shapes.
type TransientConflictError struct {
	Cause error
}

func (e *TransientConflictError) Error() string {
	if e.Cause == nil {
		return "transient transaction conflict"
	}
	return "transient transaction conflict: " + e.Cause.Error()
}

func (e *TransientConflictError) Unwrap() error { return e.Cause }

func TransientConflict(cause error) error { return &TransientConflictError{Cause: cause} }

func IsTransientConflict(err error) bool {
	var te *TransientConflictError
	return errors.As(err, &te)
}
