package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocument signals a document that failed validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrQuerySyntax signals an unbalanced quote or parenthesis in a query.
	ErrQuerySyntax = errors.New("query syntax error")
)

// QuerySyntaxError wraps ErrQuerySyntax with the offending token and its
// 0-based character offset in the raw query.
type QuerySyntaxError struct {
	Pos    int
	Token  string
	Reason string
}

func (e *QuerySyntaxError) Error() string {
	return fmt.Sprintf("%s: %s %q at position %d", ErrQuerySyntax.Error(), e.Reason, e.Token, e.Pos)
}

func (e *QuerySyntaxError) Unwrap() error { return ErrQuerySyntax }

// NewQuerySyntaxError creates a query syntax error.
func NewQuerySyntaxError(pos int, token, reason string) error {
	return &QuerySyntaxError{Pos: pos, Token: token, Reason: reason}
}
