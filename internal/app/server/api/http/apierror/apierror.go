// Package apierror renders every failure as {type, status, message, stack?}.
package apierror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"shelfkeeper/internal/domain/apperr"
)

const errorType = "error"

// Error is the response body of every failed request.
type Error struct {
	Type    string `json:"type" example:"error"`
	Status  int    `json:"status" example:"400"`
	Message string `json:"message" example:"Bad Request"`
	Stack   string `json:"stack,omitempty" doc:"Diagnostic trace, omitted in production"`
}

func (e *Error) Error() string { return e.Message }

func (e *Error) GetStatus() int { return e.Status }

var installOnce sync.Once

// Install makes huma report its own errors (body too large, unreadable
// body and the like) in the same shape. huma.NewError is process-wide, so
// the override is made once and never carries a stack; stacks for service
// errors are chosen per API with Middleware.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, _ string, _ ...error) huma.StatusError {
			return newError(status, http.StatusText(status), "", false)
		}
	})
}

type stackKey struct{}

// Middleware marks requests of one API as allowed to carry stacks.
func Middleware(includeStack bool) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !includeStack {
			next(ctx)
			return
		}
		next(huma.WithValue(ctx, stackKey{}, true))
	}
}

func stackEnabled(ctx context.Context) bool {
	on, _ := ctx.Value(stackKey{}).(bool)
	return on
}

// From converts a service error into its HTTP form.
func From(ctx context.Context, err error) *Error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}
	return newError(status, apperr.Message(err), err.Error(), stackEnabled(ctx))
}

// Write renders an error outside of huma, for the router's own 404 and 405.
func Write(w http.ResponseWriter, status int, includeStack bool) {
	body := newError(status, http.StatusText(status), "", includeStack)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newError(status int, message, cause string, withStack bool) *Error {
	e := &Error{Type: errorType, Status: status, Message: message}
	if withStack {
		e.Stack = strings.TrimSpace(cause + "\n" + string(debug.Stack()))
	}
	return e
}
