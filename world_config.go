package main

import "strings"

const defaultWorldSeed = "arena"

// WorldRole selects whether a world runs authoritative simulation or mirrors
// replicated state from the host.
type WorldRole string

const (
	RoleHost   WorldRole = "host"
	RoleClient WorldRole = "client"
)

// worldConfig captures the toggles used when constructing a world.
type worldConfig struct {
	Role      WorldRole `json:"role"`
	Lightning bool      `json:"lightning"`
	Platforms bool      `json:"platforms"`
	Seed      string    `json:"seed"`
}

// normalized returns a config with defaults applied.
func (cfg worldConfig) normalized() worldConfig {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultWorldSeed
	}
	if normalized.Role == "" {
		normalized.Role = RoleHost
	}
	return normalized
}

// defaultWorldConfig enables every arena feature with the default seed.
func defaultWorldConfig() worldConfig {
	return worldConfig{
		Role:      RoleHost,
		Lightning: true,
		Platforms: true,
		Seed:      defaultWorldSeed,
	}
}
