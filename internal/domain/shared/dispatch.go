package shared

import (
	"context"
	"fmt"
	"strings"
)

// Command is an intent to change state, routed to exactly one handler
type Command interface {
	CommandType() string
}

// Query is a request for a view, routed to exactly one handler
type Query interface {
	QueryType() string
}

// CommandHandler executes commands of the types it declares.
// It returns the key of the aggregate the command created or changed.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (Key, error)
	CommandTypes() []string
}

// QueryHandler answers queries of the types it declares
type QueryHandler interface {
	Ask(ctx context.Context, query Query) (any, error)
	QueryTypes() []string
}

// NewNoHandlerError reports a dispatch for which nothing is registered
func NewNoHandlerError(kind, messageType string) *DomainError {
	return NewDomainError(CodeNoHandler, fmt.Sprintf("no %s handler registered for %s", kind, messageType))
}

// NewAmbiguousHandlerError reports a second registration for the same type
func NewAmbiguousHandlerError(kind, messageType string) *DomainError {
	return NewDomainError(CodeAmbiguousHandler, fmt.Sprintf("%s type %s already has a handler", kind, messageType))
}

func typeName(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
