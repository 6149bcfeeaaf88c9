package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrInvalidDecimal represents an error when a decimal-valued parameter cannot be parsed.
	ErrInvalidDecimal ErrorCode = "invalid_decimal"
	// ErrUnknownSide represents an error when a trade side is neither BUY nor SELL.
	ErrUnknownSide ErrorCode = "unknown_side"
	// ErrTimestampOutOfRange represents an error when an epoch timestamp cannot be represented.
	ErrTimestampOutOfRange ErrorCode = "timestamp_out_of_range"
	// ErrMalformedPayload represents an error when a batch payload cannot be decoded.
	ErrMalformedPayload ErrorCode = "malformed_payload"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "invalid decimal for maker_fee_rate".
	Message string

	// Code (required) is the error code string.
	// E.g. "invalid_decimal".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == string(code)
}
