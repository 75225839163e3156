package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorKind names a failure class of the minting workflow.
type ErrorKind string

const (
	KindInvalidName   ErrorKind = "InvalidName"
	KindInvalidSymbol ErrorKind = "InvalidSymbol"
	KindMissingSupply ErrorKind = "MissingSupply"
	KindInvalidSupply ErrorKind = "InvalidSupply"

	KindConnectionError  ErrorKind = "ConnectionError"
	KindAlreadyConnected ErrorKind = "AlreadyConnected"
	KindNotConnected     ErrorKind = "NotConnected"
	KindUnknownAccount   ErrorKind = "UnknownAccount"
	KindUnknownWallet    ErrorKind = "UnknownWallet"
	KindInvalidNetwork   ErrorKind = "InvalidNetwork"
	KindNoActiveAccount  ErrorKind = "NoActiveAccount"

	KindNetworkParamsError    ErrorKind = "NetworkParamsError"
	KindTransactionBuildError ErrorKind = "TransactionBuildError"
	KindSigningRejected       ErrorKind = "SigningRejected"
	KindSubmissionError       ErrorKind = "SubmissionError"
	KindConfirmationTimeout   ErrorKind = "ConfirmationTimeout"
	KindSubmissionInProgress  ErrorKind = "SubmissionInProgress"
)

// IsValidation reports whether the kind is one of the asset parameter validation kinds.
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindInvalidName, KindInvalidSymbol, KindMissingSupply, KindInvalidSupply:
		return true
	}
	return false
}

// Error is a workflow error carrying its kind and the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil
}

// NewError wraps err with the given kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kinded error from a format string.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Sentinels for errors.Is checks.
var (
	ErrAlreadyConnected     = &Error{Kind: KindAlreadyConnected}
	ErrNotConnected         = &Error{Kind: KindNotConnected}
	ErrUnknownAccount       = &Error{Kind: KindUnknownAccount}
	ErrUnknownWallet        = &Error{Kind: KindUnknownWallet}
	ErrInvalidNetwork       = &Error{Kind: KindInvalidNetwork}
	ErrNoActiveAccount      = &Error{Kind: KindNoActiveAccount}
	ErrSubmissionInProgress = &Error{Kind: KindSubmissionInProgress}
)
