package vault

import "log/slog"

// DefaultExcludes are directory and file names never indexed.
var DefaultExcludes = []string{"node_modules", "__pycache__"}

type options struct {
	excludes map[string]bool
	logger   *slog.Logger
}

// Option configures a vault index.
type Option func(*options)

// WithExcludes skips any file or directory with one of the given names.
// Names starting with a dot are always skipped.
func WithExcludes(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.excludes[name] = true
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		excludes: make(map[string]bool),
		logger:   slog.Default(),
	}
	for _, name := range DefaultExcludes {
		o.excludes[name] = true
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
