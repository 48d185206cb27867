package scoring

type options struct {
	topK int
}

// Option applies a configuration option to Rank.
type Option func(*options)

// WithTopK changes the chart size. Values below one are ignored.
func WithTopK(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.topK = k
		}
	}
}
