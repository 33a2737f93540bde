package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one is outermost.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// Stack is a reusable per-route middleware list. With never mutates the
// receiver, so stacks can share a common prefix.
type Stack []Middleware

// With returns a new Stack with mws appended.
func (s Stack) With(mws ...Middleware) Stack {
	out := make(Stack, 0, len(s)+len(mws))
	out = append(out, s...)
	return append(out, mws...)
}

// Then wraps fn in every middleware of the stack.
func (s Stack) Then(fn http.HandlerFunc) http.Handler {
	return Chain(s...)(fn)
}
