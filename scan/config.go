package scan

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned when the worker count or timeout would
// make the pool hang or spin.
var ErrInvalidConfig = errors.New("workers and timeout must be positive")

// Config bounds a single scan run. Immutable once the pool has started.
type Config struct {
	Workers int
	Timeout time.Duration
}

func (c Config) Validate() error {
	if c.Workers <= 0 || c.Timeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
