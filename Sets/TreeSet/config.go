package TreeSet

import (
	"github.com/g-m-twostay/go-ordset/Trees"
	"github.com/rs/zerolog"
)

// Config of a TreeSet.
type Config struct {
	//the structure backing the set.
	Backend Trees.Kind
	//stamp Nodes with a generation and panic on stale ones.
	CheckedNodes bool
	Logger       zerolog.Logger
}

// DefaultConfig is an unchecked AVL backed set that doesn't log.
func DefaultConfig() Config {
	return Config{Backend: Trees.AVL, Logger: zerolog.Nop()}
}

type Option func(*Config)

func WithBackend(k Trees.Kind) Option {
	return func(c *Config) {
		c.Backend = k
	}
}

func WithCheckedNodes() Option {
	return func(c *Config) {
		c.CheckedNodes = true
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
