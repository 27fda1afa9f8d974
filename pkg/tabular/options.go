package tabular

import "log/slog"

// DefaultDelimiter separates cells when no WithDelimiter option is given.
const DefaultDelimiter = '\t'

type options struct {
	delimiter rune
	logger    *slog.Logger
}

// Option configures a Source.
type Option func(*options)

// WithDelimiter sets the single cell separator. Tab is the default.
func WithDelimiter(r rune) Option {
	return func(o *options) { o.delimiter = r }
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{delimiter: DefaultDelimiter, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
