// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/intake/internal/adapters/cachestore"
	_ "go.trai.ch/intake/internal/adapters/config"
	_ "go.trai.ch/intake/internal/adapters/idgen"
	_ "go.trai.ch/intake/internal/adapters/logger"
	_ "go.trai.ch/intake/internal/adapters/memprobe"
	_ "go.trai.ch/intake/internal/adapters/metrics"
	_ "go.trai.ch/intake/internal/adapters/picker"
	_ "go.trai.ch/intake/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/intake/internal/app"
	_ "go.trai.ch/intake/internal/engine/ingest"
)
