// Package config holds the defaults for command-line flags.
package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment
	// unless the memory store is selected.
	DefaultDatabaseURL = ""

	// DefaultStore selects the PostgreSQL store.
	DefaultStore = StorePostgres

	// DefaultTimezone makes the clock use the process local zone.
	DefaultTimezone = "Local"

	// DefaultSweepInterval is how often serve runs the reset sweep.
	DefaultSweepInterval = time.Minute

	// DefaultLockTimeout bounds how long a unit of work waits for a card row lock.
	DefaultLockTimeout = 5 * time.Second

	// DefaultRateLimit is the number of API requests allowed per client IP per minute.
	DefaultRateLimit = 300

	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)
