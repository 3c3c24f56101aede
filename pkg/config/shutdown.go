package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ShutdownConfig bounds the work done after the user quits or a signal arrives.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Context returns a context limited by Timeout. It does not derive from the
// run context, which is usually already cancelled when shutdown starts.
func (c *ShutdownConfig) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Timeout)
}
