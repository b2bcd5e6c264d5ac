package render

import "context"

type dataKey struct{}

// Data returns the view data a templ component is rendered with. ok is false
// outside a render or when the data is not a T.
func Data[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(dataKey{}).(T)
	return v, ok
}

func withData(ctx context.Context, data any) context.Context {
	if data == nil {
		return ctx
	}
	return context.WithValue(ctx, dataKey{}, data)
}
