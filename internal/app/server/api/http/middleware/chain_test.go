package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_With(t *testing.T) {
	var calls []string
	mark := func(name string) Func {
		return func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, name)
			next(ctx)
		}
	}

	chain := NewChain(mark("request_id"), mark("logger"))

	books := chain.With(mark("books"))
	users := chain.With()
	require.Len(t, books, 3)
	require.Len(t, users, 2)

	books[0](nil, func(huma.Context) {})
	books[2](nil, func(huma.Context) {})
	users[1](nil, func(huma.Context) {})
	assert.Equal(t, []string{"request_id", "books", "logger"}, calls)

	// A handler appending to its own slice does not leak into the next one.
	_ = append(users, mark("extra"))
	assert.Len(t, chain.With(), 2)
}
