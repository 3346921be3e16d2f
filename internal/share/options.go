// Package share holds the small generic helpers used across Room's packages
// to implement the multipath construction convention: zero-config, config
// struct, and fluent functional options, all landing on the same
// constructor.
package share

// Option is a functional setter for any struct T.
// Example: func WithTickInterval(d time.Duration) Option[RuntimeConfig]
type Option[T any] func(*T)

// ApplyOptions applies a set of options to a given instance, in order.
func ApplyOptions[T any](target *T, opts ...Option[T]) {
	for _, opt := range opts {
		opt(target)
	}
}
