package infra

type ContextKey int

const (
	AuthKey ContextKey = iota
	RequestIDKey
)
