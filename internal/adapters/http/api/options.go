package api

import "time"

type options struct {
	locale            string
	corsOrigins       []string
	rateLimitRequests int
	rateLimitWindow   time.Duration
}

func defaultOptions() options {
	return options{
		locale:            "en",
		rateLimitRequests: 100,
		rateLimitWindow:   time.Minute,
	}
}

// Option configures the API server.
type Option func(*options)

// WithLocale sets the default locale for compact numbers in chart responses.
func WithLocale(locale string) Option {
	return func(o *options) {
		if locale != "" {
			o.locale = locale
		}
	}
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
// An empty list disables CORS handling.
func WithCORSOrigins(origins []string) Option {
	return func(o *options) { o.corsOrigins = origins }
}

// WithRateLimit allows requests per window and client IP. requests <= 0
// disables rate limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(o *options) {
		o.rateLimitRequests = requests
		if window > 0 {
			o.rateLimitWindow = window
		}
	}
}
