// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, STORAGE_*, SERVER_*, ADAPTER_*, WORKERS_*
// and CONFIG via the `env` and `envPrefix` tags of [StructuredConfig].
// Durations use time.ParseDuration syntax ("12h", "-1s").
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
