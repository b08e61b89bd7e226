// Package featureflags wires the service's runtime switches to Rollout.
// Without an API key the flags keep their defaults.
package featureflags

import (
	"context"
	"fmt"
	"sync"

	"github.com/rollout/rox-go/v5/server"
)

// Flags is the registered container. Field names become flag names.
type Flags struct {
	Offline  server.RoxFlag
	LogLevel server.RoxString
}

var (
	mu    sync.Mutex
	rox   *server.Rox
	flags = newFlags("info")
)

func newFlags(defaultLevel string) *Flags {
	return &Flags{
		Offline:  server.NewRoxFlag(false),
		LogLevel: server.NewRoxString(defaultLevel, []string{"debug", "info", "warn", "error"}),
	}
}

// Init registers the flags and, when apiKey is set, waits for the first
// configuration fetch or ctx expiry. defaultLevel seeds the logLevel flag.
func Init(ctx context.Context, apiKey, defaultLevel string) error {
	mu.Lock()
	defer mu.Unlock()

	flags = newFlags(defaultLevel)
	if apiKey == "" {
		return nil
	}

	rox = server.NewRox()
	rox.Register("commerce", flags)

	ready := rox.Setup(apiKey, server.NewRoxOptions(server.RoxOptionsBuilder{}))
	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("rollout setup: %w", ctx.Err())
	}
}

// Values returns the current flag container.
func Values() *Flags {
	mu.Lock()
	defer mu.Unlock()
	return flags
}

// Offline reports whether the kill switch is on.
func Offline() bool {
	return Values().Offline.IsEnabled(nil)
}

// LogLevel returns the requested log level.
func LogLevel() string {
	return Values().LogLevel.GetValue(nil)
}

// Shutdown stops the Rollout client if one was started.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if rox != nil {
		rox.Shutdown()
		rox = nil
	}
}
