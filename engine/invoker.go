package engine

import "context"

// Invoker runs one full generation pass over a State and returns the state
// enriched with plan, evidence, and final content. It is the single blocking
// point in the request path and may run arbitrarily long; no timeout is
// imposed here. Implementations report failures as errors and the HTTP layer
// folds them into the response envelope.
type Invoker interface {
	Invoke(ctx context.Context, st State) (State, error)
}
