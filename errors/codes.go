package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input/configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration value is out of range or malformed.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidInput indicates caller-supplied input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Pipeline errors
const (
	// ErrCodeStreamRead indicates the underlying input stream failed mid-read.
	ErrCodeStreamRead ErrorCode = "STREAM_READ_FAILED"
	// ErrCodeWorkerFailed indicates a concurrent worker failed unexpectedly.
	ErrCodeWorkerFailed ErrorCode = "WORKER_FAILED"
	// ErrCodeCanceled indicates the run was canceled before completing.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeTimeout indicates the run exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:  true,
	ErrCodeCanceled: false,
}

// IsRetryableCode reports whether an error code is safe to retry.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
