package journal

type options struct {
	workers int
	kinds   []string
}

// Option configures a Decoder.
type Option func(*options)

// WithWorkers bounds how many lines DecodeAll decodes at once.
// Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithKinds restricts schema decoding to the named event kinds. Lines of
// any other kind decode as UnknownEvent. Default: every known kind.
func WithKinds(kinds ...string) Option {
	return func(o *options) {
		o.kinds = kinds
	}
}
