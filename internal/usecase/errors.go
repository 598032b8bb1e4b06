package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// クライアントに返すエラー。Errは内部原因（ログ用）でレスポンスには出さない。
type HTTPError struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%d: %s", e.Status, e.Message)
	if len(e.Errors) > 0 {
		msg += " (" + strings.Join(e.Errors, "; ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 入力の不備（400）。detailsは項目ごとのメッセージ。
func NewValidationError(message string, details ...string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  details,
	}
}

func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// IDの形式不正は404ではなく400
func NewInvalidIDError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ストア障害。メッセージは固定。
func NewStoreError(cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Server Error",
		Err:     cause,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
