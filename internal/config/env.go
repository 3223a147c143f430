// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the KEYCHAIN_* environment. Unset variables leave
// their fields untouched; a value that does not convert fails the whole load.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error parsing KEYCHAIN_* env vars: %w", err)
	}

	return nil
}
