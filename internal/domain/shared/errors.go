package shared

// Error codes shared by all aggregates and dispatchers
const (
	CodeValidation          = "VALIDATION"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyDeleted      = "ALREADY_DELETED"
	CodeNoOp                = "NO_OP"
	CodeCorruptHistory      = "CORRUPT_HISTORY"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeNoHandler           = "NO_HANDLER"
	CodeAmbiguousHandler    = "AMBIGUOUS_HANDLER"
	CodeCurrencyMismatch    = "CURRENCY_MISMATCH"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so a specific instance
// satisfies errors.Is against the sentinel of its category.
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
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyDeleted      = NewDomainError(CodeAlreadyDeleted, "Resource has already been deleted")
	ErrNoOp                = NewDomainError(CodeNoOp, "Requested value equals the current value")
	ErrCorruptHistory      = NewDomainError(CodeCorruptHistory, "Event history violates the aggregate state machine")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrNoHandler           = NewDomainError(CodeNoHandler, "No handler registered")
	ErrAmbiguousHandler    = NewDomainError(CodeAmbiguousHandler, "More than one handler registered")
	ErrCurrencyMismatch    = NewDomainError(CodeCurrencyMismatch, "Currencies do not match")
)
