package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeUnauthorized indicates the credential was rejected by the server.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the identity lacks the required capability.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeTokenExpired indicates the stored token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the stored token is malformed.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Identity/state errors
const (
	// ErrCodeInvalidPayload indicates the server returned an identity record
	// missing required fields.
	ErrCodeInvalidPayload ErrorCode = "INVALID_PAYLOAD"
	// ErrCodeCorruptState indicates persisted client state could not be decoded.
	ErrCodeCorruptState ErrorCode = "CORRUPT_STATE"
	// ErrCodeInvalidInput indicates caller-supplied input failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport errors (retryable)
const (
	// ErrCodeConnectionFailed indicates the API could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServerError indicates the API answered with a 5xx status.
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
)

// Other
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected client-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeServerError:      true,
}

// IsRetryableCode reports whether the code describes a transient failure.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
