package session

import "context"

type contextKey struct{}

func NewContext(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, contextKey{}, state)
}

// FromContext returns the state stored by NewContext. Without one the caller
// sees an unhydrated anonymous state.
func FromContext(ctx context.Context) State {
	state, _ := ctx.Value(contextKey{}).(State)
	return state
}
