package store

// DefaultIDKey is the identifier attribute used when none is configured.
const DefaultIDKey = "_id"

// Options holds configuration for an EntityStore.
type Options struct {
	// IDKey is the attribute holding each entity's identifier.
	// Default: "_id"
	IDKey string
}

// Option overrides a single Options field.
type Option func(*Options)

// WithIDKey sets the identifier attribute. An empty key fails construction.
func WithIDKey(key string) Option {
	return func(o *Options) {
		o.IDKey = key
	}
}

// DefaultOptions returns the options every store starts from.
func DefaultOptions() Options {
	return Options{
		IDKey: DefaultIDKey,
	}
}

// resolveOptions applies opts over the defaults.
func resolveOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// validate ensures the resolved options are usable.
func (o Options) validate() error {
	if o.IDKey == "" {
		return ErrIDKeyRequired
	}
	return nil
}
