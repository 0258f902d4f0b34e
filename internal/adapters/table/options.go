package table

// Option applies a configuration option to a Codec.
type Option func(*Codec)

// WithSeparator sets the string that separates countries inside a medal cell.
func WithSeparator(sep string) Option {
	return func(c *Codec) {
		if sep != "" {
			c.separator = sep
		}
	}
}
