// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "availability:"

// DefaultConfigCacheTTL applies when CONFIG_CACHE_TTL is zero.
const DefaultConfigCacheTTL = 5 * time.Minute

// HealthCheckInterval is how often the health monitor pings its dependencies.
const HealthCheckInterval = 60 * time.Second
