// Package lifecycle holds shared constants for application start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown steps.
const DefaultTimeout = 10 * time.Second
