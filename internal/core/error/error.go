package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures surfaced to the user as feedback.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindEmptyCatalog Kind = "empty_catalog"
	KindLookupMiss   Kind = "lookup_miss"
	KindScannerInit  Kind = "scanner_init"
	KindSystem       Kind = "system"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// NetworkErrorMessage is shown when the product database cannot be fetched.
	NetworkErrorMessage = "Could not connect to the product database."
	// EmptyCatalogMessage is shown when the fetch succeeded but no product survived parsing.
	EmptyCatalogMessage = "Connected, but no products were found."
	// ScannerInitMessage is shown when a decode source cannot be started.
	ScannerInitMessage = "Could not start the scanner. Check device permissions."
	// LookupMissFormat takes the scanned code.
	LookupMissFormat = "Product %s not found."
)

var (
	ErrNetwork      = errors.New("network error")
	ErrEmptyCatalog = errors.New("empty catalog")
	ErrLookupMiss   = errors.New("product not found")
	ErrScannerInit  = errors.New("scanner init failed")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Status  int
	Message string

	// Upstream is the status returned by a remote endpoint, 0 on transport failure.
	Upstream int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the wrapped error matches target.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindSystem,
		Status:  status,
		Message: message,
	}
}

// Network reports a failed fetch. upstream is the remote status, or 0 when the
// request never produced a response.
func Network(err error, upstream int) *AppError {
	if err == nil {
		err = fmt.Errorf("%w: status %d", ErrNetwork, upstream)
	} else if !errors.Is(err, ErrNetwork) {
		err = fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return &AppError{
		Err:      err,
		Kind:     KindNetwork,
		Status:   http.StatusBadGateway,
		Message:  NetworkErrorMessage,
		Upstream: upstream,
	}
}

// EmptyCatalog reports a successful fetch that produced zero records.
func EmptyCatalog() *AppError {
	return &AppError{
		Err:     ErrEmptyCatalog,
		Kind:    KindEmptyCatalog,
		Status:  http.StatusBadGateway,
		Message: EmptyCatalogMessage,
	}
}

// LookupMiss reports a valid query with no matching record.
func LookupMiss(code string) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %q", ErrLookupMiss, code),
		Kind:    KindLookupMiss,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf(LookupMissFormat, code),
	}
}

// ScannerInit reports a decode source that failed to start.
func ScannerInit(source string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %w", ErrScannerInit, source, err),
		Kind:    KindScannerInit,
		Status:  http.StatusServiceUnavailable,
		Message: ScannerInitMessage,
	}
}

// KindOf returns the Kind carried by err, or KindSystem when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindSystem
}

// Feedback returns the user-facing message for err.
func Feedback(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}

// StatusOf returns the HTTP status carried by err, 500 otherwise.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
