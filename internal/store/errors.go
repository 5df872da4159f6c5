package store

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindAuthFailure
	ErrorKindNotFound
	ErrorKindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindAuthFailure:
		return "auth failure"
	case ErrorKindNotFound:
		return "not found"
	case ErrorKindInvalidInput:
		return "invalid input"
	default:
		return "internal"
	}
}

func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindInternal
	case errors.Is(err, ErrAuthFailed):
		return ErrorKindAuthFailure
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrUserNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrInvalidInput):
		return ErrorKindInvalidInput
	}

	return ErrorKindInternal
}

func IsNotFound(err error) bool {
	return ClassifyError(err) == ErrorKindNotFound
}

var (
	ErrAuthFailed      = errors.New("invalid login or password")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrLoginTaken      = fmt.Errorf("%w: login already registered", ErrInvalidInput)
	ErrOrderFinalized  = fmt.Errorf("%w: order already finalized", ErrInvalidInput)
)
