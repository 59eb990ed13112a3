package services

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// StatusCode maps the kind onto its HTTP status.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// AppError carries a client-safe message and an optional wrapped cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(msg string) error { return &AppError{Kind: KindValidation, Message: msg} }
func AuthError(msg string) error       { return &AppError{Kind: KindAuth, Message: msg} }
func ForbiddenError(msg string) error  { return &AppError{Kind: KindForbidden, Message: msg} }
func NotFoundError(msg string) error   { return &AppError{Kind: KindNotFound, Message: msg} }
func ConflictError(msg string) error   { return &AppError{Kind: KindConflict, Message: msg} }

// ServerError wraps an unexpected failure; msg is what the client sees.
func ServerError(msg string, err error) error {
	return &AppError{Kind: KindServer, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindServer for anything unclassified.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// IsKind reports whether err is an AppError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == k
}
