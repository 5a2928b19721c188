package errors

import "fmt"

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// StreamRead creates a new AppError for an input stream that failed mid-read.
func StreamRead(cause error) *AppError {
	return &AppError{
		Code: ErrCodeStreamRead, Message: "Reading the input stream failed.",
		Retryable: false, Cause: cause,
	}
}

// WorkerFailed creates a new AppError for a concurrent worker that failed.
func WorkerFailed(stage string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeWorkerFailed, Message: fmt.Sprintf("A %s worker failed.", stage),
		Retryable: false, Cause: cause,
		Details: map[string]any{"stage": stage},
	}
}

// InvalidConfig creates a new AppError for a bad configuration value.
func InvalidConfig(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// InvalidInput creates a new AppError for invalid caller input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Canceled creates a new AppError for a run canceled before completion.
func Canceled(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: fmt.Sprintf("The %s operation was canceled.", operation),
		Retryable: false, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// Timeout creates a new AppError for a run that exceeded its deadline.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("The %s operation took too long.", operation),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
