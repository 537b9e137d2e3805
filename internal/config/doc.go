// Package config resolves the mediator tool's configuration.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. MEDIATOR_* environment  │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. .env file               │
//	├─────────────────────────────┤
//	│  2. TOML config file        │  ← --config
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[output]
//	format = "json"
//
//	[keys]
//	cacheSize = 512
//
//	[watch]
//	debounce = "500ms"
//
// Command line flags are applied by the caller on top of the result.
package config
