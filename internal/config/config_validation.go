// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-totp-vault/models"
)

// validate checks that the final merged [StructuredConfig] can start the
// server. It returns one of the ErrInvalid*Configs sentinels wrapped with the
// offending field.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Issuer == "" {
		return fmt.Errorf("%w: empty issuer", ErrInvalidAppConfigs)
	}
	if _, ok := models.ParseKDFAlgorithm(cfg.App.KDFAlgorithm); !ok {
		return fmt.Errorf("%w: unknown kdf algorithm %q", ErrInvalidAppConfigs, cfg.App.KDFAlgorithm)
	}
	if cfg.App.PasswordIterations <= 0 {
		return fmt.Errorf("%w: password iterations must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.LoginTicketTTL <= 0 {
		return fmt.Errorf("%w: login ticket ttl must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionTTL > 0 && cfg.Workers.SessionSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Adapter.HTTPAddress)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: address must be an absolute URL", ErrInvalidAdapterConfigs)
	}

	return nil
}
