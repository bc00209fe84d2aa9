package stream

// Config holds configuration for stream syncing.
type Config struct {
	// TTLAttribute is the attribute marking soft-deleted items.
	// Items whose TTL is at or before now are treated as removed.
	// Default: "ttl"
	TTLAttribute string
}

// DefaultConfig returns defaults matching items written with a "ttl" attribute.
func DefaultConfig() Config {
	return Config{
		TTLAttribute: "ttl",
	}
}

// validate fills in unset fields.
func (c *Config) validate() {
	if c.TTLAttribute == "" {
		c.TTLAttribute = "ttl"
	}
}
