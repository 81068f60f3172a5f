package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	if e.suggestion == "" {
		return fmt.Sprintf("Failed to %s: %s\n\nError: %v", e.operation, e.context, e.cause)
	}
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// actionError wraps a view or auth failure. Missing tokens point at login;
// user errors carry their own message and need no suggestion.
func actionError(operation, what string, err error, fallback string) error {
	switch {
	case errors.Is(err, api.ErrNoToken):
		return newCommandError(operation, what, err, "Run 'momentum login' first.")
	case errors.Is(err, context.Canceled):
		return err
	}

	var fields momentumerrors.FieldErrors
	if errors.As(err, &fields) {
		return newCommandError(operation, what, err, "Correct the flagged values and try again.")
	}
	return newCommandError(operation, what, &shownError{msg: momentumerrors.UserMessage(err, fallback), err: err}, "")
}

// shownError prints msg but keeps err for errors.Is.
type shownError struct {
	msg string
	err error
}

func (e *shownError) Error() string { return e.msg }

func (e *shownError) Unwrap() error { return e.err }
